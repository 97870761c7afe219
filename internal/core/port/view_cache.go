package port

import "context"

// Paths of the cached campaign views. Writes invalidate them.
const (
	CampaignsPath = "/campaigns"
)

// CampaignPath returns the detail view path of one campaign.
func CampaignPath(id string) string {
	return CampaignsPath + "/" + id
}

// ViewInvalidator signals that cached views for the given paths must be
// recomputed. It is fire-and-forget: implementations report their own
// failures and never block the caller on acknowledgement.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, paths ...string)
}

// ViewCache stores rendered views keyed by path and a caller-specific
// variant (for example user id and query string). Every path carries a
// version that Invalidate advances.
type ViewCache interface {
	ViewInvalidator
	// Load returns a cached view, the path version it was looked up under
	// and whether it was found. The version is returned on a miss too.
	Load(ctx context.Context, path, variant string) (body []byte, version int64, ok bool)
	// Store caches a view rendered after Load reported version. A view
	// stored under a version that has since been invalidated is never
	// served.
	Store(ctx context.Context, path, variant string, version int64, body []byte)
}
