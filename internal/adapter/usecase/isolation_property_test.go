package usecase

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"brandhub/internal/core/domain"
	"brandhub/internal/core/port"
)

// TestCrossStoreIsolationProperty checks that no operation by the owner of
// one store ever succeeds on, or reports as missing, a campaign of another
// store, whatever state that campaign is in.
func TestCrossStoreIsolationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	f := newFixture(t)
	ctx := context.Background()

	properties.Property("foreign store access is Forbidden", prop.ForAll(
		func(title string, budget float64, publish bool, op int) bool {
			c, err := f.uc.Create(ctx, ownerA, port.CreateCampaignInput{Title: title, Budget: budget})
			if err != nil {
				return false
			}
			if publish {
				if _, err = f.uc.Publish(ctx, ownerA, c.ID); err != nil {
					return false
				}
			}

			switch op {
			case 0:
				_, err = f.uc.Get(ctx, ownerB, c.ID)
			case 1:
				_, err = f.uc.Update(ctx, ownerB, c.ID, port.UpdateCampaignInput{Title: &title})
			case 2:
				err = f.uc.Delete(ctx, ownerB, c.ID)
			default:
				_, err = f.uc.Publish(ctx, ownerB, c.ID)
			}
			if port.KindOf(err) != port.KindForbidden {
				return false
			}

			got, err := f.uc.Get(ctx, ownerA, c.ID)
			if err != nil {
				return false
			}
			want := domain.StatusDraft
			if publish {
				want = domain.StatusPublished
			}
			return got.Status == want && got.Title == title
		},
		gen.Identifier().SuchThat(func(s string) bool { return len(s) <= 200 }),
		gen.Float64Range(0.01, 1e6),
		gen.Bool(),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}
