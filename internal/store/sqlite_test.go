package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/store"
	"github.com/nhle/gift-tracker/internal/testutil"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newRecipient(id, name string, details model.RecipientDetails) model.Recipient {
	return model.Recipient{
		RecipientBase: model.RecipientBase{
			ID:        id,
			Name:      name,
			Country:   model.DefaultCountry,
			Tags:      []string{},
			IsActive:  true,
			CreatedAt: baseTime,
			UpdatedAt: baseTime,
		},
		Details: details,
	}
}

func TestNewSQLiteStore_Seeds(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	occasions, err := s.GetOccasions(ctx)
	require.NoError(t, err)
	require.Len(t, occasions, 13)
	assert.Equal(t, "occ_christmas", occasions[0].ID)
	assert.Equal(t, "occ_other", occasions[len(occasions)-1].ID)
	assert.Equal(t, "Valentine's Day", occasions[4].Name)

	categories, err := s.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 14)
	assert.Equal(t, "cat_electronics", categories[0].ID)

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "system", settings["theme"])
	assert.Equal(t, "USD", settings["currency"])
	assert.Equal(t, "MM/DD/YYYY", settings["date_format"])
	assert.Equal(t, "7", settings["default_reminder_days"])
	assert.Equal(t, "false", settings["sidebar_collapsed"])
	assert.Len(t, settings["current_year"], 4)
}

func TestNewSQLiteStore_ReopenIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gifts.db")
	ctx := context.Background()

	s1, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.CreateRecipient(ctx, newRecipient("rec_1", "Alice", model.IndividualDetails{})))
	require.NoError(t, s1.PutSetting(ctx, "theme", "dark"))
	require.NoError(t, s1.Close())

	s2, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	var versions int
	require.NoError(t, s2.DB().Get(&versions, "SELECT COUNT(*) FROM schema_version"))
	assert.Equal(t, 1, versions)

	occasions, err := s2.GetOccasions(ctx)
	require.NoError(t, err)
	assert.Len(t, occasions, 13)

	recipients, err := s2.GetRecipients(ctx)
	require.NoError(t, err)
	assert.Len(t, recipients, 1)

	settings, err := s2.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", settings["theme"])
}

func TestRecipients_RoundTripPerVariant(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	budget := 150.0
	ind := newRecipient("rec_ind", "Alice", model.IndividualDetails{
		Birthday:     "1990-05-01",
		Relationship: "Sister",
	})
	ind.Email = "alice@example.com"
	ind.BudgetLimit = &budget
	ind.Tags = []string{"family", "books"}

	fam := newRecipient("rec_fam", "The Smiths", model.FamilyDetails{
		FamilyMembers:  []string{"John", "Jane", "Jimmy"},
		PrimaryContact: "Jane",
	})

	org := newRecipient("rec_org", "Food Bank", model.OrganizationDetails{
		OrganizationType: "charity",
		TaxID:            "98-7654321",
		ContactPerson:    "Sam",
		ContactTitle:     "Director",
	})

	for _, r := range []model.Recipient{ind, fam, org} {
		require.NoError(t, s.CreateRecipient(ctx, r))
	}

	got, err := s.GetRecipients(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// name ASC
	assert.Equal(t, []string{"Alice", "Food Bank", "The Smiths"},
		[]string{got[0].Name, got[1].Name, got[2].Name})

	assert.Equal(t, ind, got[0])
	assert.Equal(t, org, got[1])
	assert.Equal(t, fam, got[2])
}

func TestRecipients_AbsentOptionalsAreNull(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRecipient(ctx, newRecipient("rec_1", "Alice", model.IndividualDetails{})))

	var nulls int
	require.NoError(t, s.DB().Get(&nulls, `
		SELECT COUNT(*) FROM recipients
		WHERE id = 'rec_1' AND email IS NULL AND relationship IS NULL
			AND family_members IS NULL AND tax_id IS NULL AND budget_limit IS NULL`))
	assert.Equal(t, 1, nulls)
}

func TestRecipients_SoftDeletedHidden(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRecipient(ctx, newRecipient("rec_1", "Alice", model.IndividualDetails{})))
	require.NoError(t, s.CreateRecipient(ctx, newRecipient("rec_2", "Bob", model.IndividualDetails{})))

	_, err := s.DB().Exec("UPDATE recipients SET deleted_at = datetime('now') WHERE id = 'rec_2'")
	require.NoError(t, err)

	got, err := s.GetRecipients(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rec_1", got[0].ID)
}

func TestRecipients_UnknownTypeRejected(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.CreateRecipient(context.Background(), model.Recipient{
		RecipientBase: model.RecipientBase{ID: "rec_1", Name: "Nobody"},
	})
	assert.ErrorIs(t, err, model.ErrUnknownRecipientType)
}

func TestGifts_CreateWithContributors(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRecipient(ctx, newRecipient("rec_1", "Alice", model.IndividualDetails{})))

	total := 90.0
	mine := 30.0
	g := model.Gift{
		ID:               "gift_1",
		RecipientID:      "rec_1",
		OccasionID:       "occ_birthday",
		CategoryID:       "cat_books",
		Name:             "Cookbook",
		Year:             2025,
		PurchasePrice:    30,
		Status:           model.GiftPurchased,
		IsSplitGift:      true,
		TotalGiftCost:    &total,
		UserContribution: &mine,
		CreatedAt:        baseTime,
		UpdatedAt:        baseTime,
		Contributors: []model.GiftContributor{
			{ID: "gc_1", GiftID: "gift_1", ContributorName: "Me", ContributionAmount: 30, IsCurrentUser: true, HasPaid: true, CreatedAt: baseTime, UpdatedAt: baseTime},
			{ID: "gc_2", GiftID: "gift_1", ContributorName: "Bob", ContributionAmount: 60, CreatedAt: baseTime, UpdatedAt: baseTime},
		},
	}
	require.NoError(t, s.CreateGift(ctx, g))

	got, err := s.GetGifts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, g, got[0])
}

func TestGifts_ContributorFailureRollsBack(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRecipient(ctx, newRecipient("rec_1", "Alice", model.IndividualDetails{})))

	g := model.Gift{
		ID: "gift_1", RecipientID: "rec_1", Name: "Vase", Year: 2025,
		Status: model.GiftPurchased, CreatedAt: baseTime, UpdatedAt: baseTime,
		Contributors: []model.GiftContributor{
			{ID: "gc_dup", ContributorName: "A", CreatedAt: baseTime, UpdatedAt: baseTime},
			{ID: "gc_dup", ContributorName: "B", CreatedAt: baseTime, UpdatedAt: baseTime},
		},
	}
	require.Error(t, s.CreateGift(ctx, g))

	got, err := s.GetGifts(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGifts_ConstraintViolations(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRecipient(ctx, newRecipient("rec_1", "Alice", model.IndividualDetails{})))

	missingRecipient := model.Gift{
		ID: "gift_1", RecipientID: "rec_missing", Name: "Vase", Year: 2025,
		Status: model.GiftPurchased, CreatedAt: baseTime, UpdatedAt: baseTime,
	}
	assert.Error(t, s.CreateGift(ctx, missingRecipient))

	negative := model.Gift{
		ID: "gift_2", RecipientID: "rec_1", Name: "Vase", Year: 2025, PurchasePrice: -1,
		Status: model.GiftPurchased, CreatedAt: baseTime, UpdatedAt: baseTime,
	}
	assert.Error(t, s.CreateGift(ctx, negative))

	badStatus := model.Gift{
		ID: "gift_3", RecipientID: "rec_1", Name: "Vase", Year: 2025,
		Status: "lost", CreatedAt: baseTime, UpdatedAt: baseTime,
	}
	assert.Error(t, s.CreateGift(ctx, badStatus))
}

func TestGifts_NewestFirst(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRecipient(ctx, newRecipient("rec_1", "Alice", model.IndividualDetails{})))

	for i, id := range []string{"gift_old", "gift_new", "gift_mid"} {
		offset := []time.Duration{0, 2 * time.Hour, time.Hour}[i]
		require.NoError(t, s.CreateGift(ctx, model.Gift{
			ID: id, RecipientID: "rec_1", Name: id, Year: 2025,
			Status:    model.GiftPurchased,
			CreatedAt: baseTime.Add(offset),
			UpdatedAt: baseTime.Add(offset),
		}))
	}

	got, err := s.GetGifts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "gift_new", got[0].ID)
	assert.Equal(t, "gift_mid", got[1].ID)
	assert.Equal(t, "gift_old", got[2].ID)
	assert.NotNil(t, got[0].Contributors)
}

func TestGifts_SoftDeletedHidden(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRecipient(ctx, newRecipient("rec_1", "Alice", model.IndividualDetails{})))
	for _, id := range []string{"gift_1", "gift_2"} {
		require.NoError(t, s.CreateGift(ctx, model.Gift{
			ID: id, RecipientID: "rec_1", Name: id, Year: 2025,
			Status:    model.GiftPurchased,
			CreatedAt: baseTime,
			UpdatedAt: baseTime,
		}))
	}

	_, err := s.DB().Exec("UPDATE gifts SET deleted_at = datetime('now') WHERE id = 'gift_2'")
	require.NoError(t, err)

	got, err := s.GetGifts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "gift_1", got[0].ID)
}

func TestIdeas_RoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	price := 24.5
	idea := model.Idea{
		ID:             "idea_1",
		Name:           "Board game",
		EstimatedPrice: &price,
		Priority:       4,
		Tags:           []string{"games"},
		CreatedAt:      baseTime,
		UpdatedAt:      baseTime,
	}
	require.NoError(t, s.CreateIdea(ctx, idea))

	got, err := s.GetIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, idea, got[0])
	assert.True(t, got[0].IsGeneral())
}

func TestIdeas_SoftDeletedHidden(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"idea_1", "idea_2"} {
		require.NoError(t, s.CreateIdea(ctx, model.Idea{
			ID: id, Name: id, Priority: 3,
			Tags:      []string{},
			CreatedAt: baseTime,
			UpdatedAt: baseTime,
		}))
	}

	_, err := s.DB().Exec("UPDATE ideas SET deleted_at = datetime('now') WHERE id = 'idea_1'")
	require.NoError(t, err)

	got, err := s.GetIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "idea_2", got[0].ID)
}

func TestOccasions_SoftDeletedHidden(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	before, err := s.GetOccasions(ctx)
	require.NoError(t, err)

	_, err = s.DB().Exec("UPDATE occasions SET deleted_at = datetime('now') WHERE id = 'occ_birthday'")
	require.NoError(t, err)

	after, err := s.GetOccasions(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)-1)
	for _, o := range after {
		assert.NotEqual(t, "occ_birthday", o.ID)
	}
}

func TestSettings_PutReplaces(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutSetting(ctx, "theme", "dark"))
	require.NoError(t, s.PutSetting(ctx, "theme", "light"))

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", settings["theme"])
	assert.Len(t, settings, 6)
}
