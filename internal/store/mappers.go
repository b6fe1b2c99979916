package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nhle/gift-tracker/internal/model"
)

// Row is a single relational row keyed by snake_case column name, as
// produced by sqlx MapScan. Values are the driver's primitives: int64,
// float64, string, []byte, time.Time or nil.
type Row map[string]interface{}

// seedTimeLayout is the format of SQLite's datetime('now') column defaults.
const seedTimeLayout = "2006-01-02 15:04:05"

// str returns the column as text; NULL and missing columns yield "".
func (r Row) str(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return formatTime(v)
	default:
		return fmt.Sprint(v)
	}
}

// boolean maps a 0/1 column to a bool by truthiness: any non-zero number
// is true, NULL is false.
func (r Row) boolean(col string) bool {
	switch v := r[col].(type) {
	case nil:
		return false
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n != 0
		}
		return v != ""
	case []byte:
		return Row{col: string(v)}.boolean(col)
	default:
		return false
	}
}

// integer returns the column as an int; NULL and non-numeric text yield 0.
func (r Row) integer(col string) int {
	switch v := r[col].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	case []byte:
		n, _ := strconv.Atoi(string(v))
		return n
	default:
		return 0
	}
}

// float returns the column as a float64; NULL yields 0.
func (r Row) float(col string) float64 {
	if f := r.floatPtr(col); f != nil {
		return *f
	}
	return 0
}

// floatPtr returns nil for NULL or missing columns.
func (r Row) floatPtr(col string) *float64 {
	var f float64
	switch v := r[col].(type) {
	case int64:
		f = float64(v)
	case float64:
		f = v
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		f = n
	case []byte:
		n, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil
		}
		f = n
	default:
		return nil
	}
	return &f
}

// list parses a JSON-encoded string array. NULL, missing and empty
// columns yield an empty, non-nil slice.
func (r Row) list(col string) ([]string, error) {
	raw := r.str(col)
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", col, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// timestamp parses a stored timestamp; NULL yields the zero time.
func (r Row) timestamp(col string) (time.Time, error) {
	if t, ok := r[col].(time.Time); ok {
		return t, nil
	}
	raw := r.str(col)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{timeLayout, time.RFC3339Nano, seedTimeLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing %s: invalid timestamp %q", col, raw)
}

// timestampPtr is timestamp for nullable columns.
func (r Row) timestampPtr(col string) (*time.Time, error) {
	if r.str(col) == "" {
		if _, ok := r[col].(time.Time); !ok {
			return nil, nil
		}
	}
	t, err := r.timestamp(col)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// rowTimes reads created_at, updated_at and deleted_at.
func rowTimes(r Row) (created, updated time.Time, deleted *time.Time, err error) {
	if created, err = r.timestamp("created_at"); err != nil {
		return
	}
	if updated, err = r.timestamp("updated_at"); err != nil {
		return
	}
	deleted, err = r.timestampPtr("deleted_at")
	return
}

// MapRecipientRow converts a recipients row into a model.Recipient. The
// shared fields are mapped first, then the type column selects which
// variant's fields are attached. An unrecognized type is an error.
func MapRecipientRow(r Row) (model.Recipient, error) {
	tags, err := r.list("tags")
	if err != nil {
		return model.Recipient{}, fmt.Errorf("mapping recipient %s: %w", r.str("id"), err)
	}
	created, updated, deleted, err := rowTimes(r)
	if err != nil {
		return model.Recipient{}, fmt.Errorf("mapping recipient %s: %w", r.str("id"), err)
	}

	country := r.str("country")
	if country == "" {
		country = model.DefaultCountry
	}

	base := model.RecipientBase{
		ID:           r.str("id"),
		Name:         r.str("name"),
		Email:        r.str("email"),
		Phone:        r.str("phone"),
		AddressLine1: r.str("address_line1"),
		AddressLine2: r.str("address_line2"),
		City:         r.str("city"),
		State:        r.str("state"),
		PostalCode:   r.str("postal_code"),
		Country:      country,
		BudgetLimit:  r.floatPtr("budget_limit"),
		Interests:    r.str("interests"),
		Tags:         tags,
		AvatarPath:   r.str("avatar_path"),
		IsActive:     r.boolean("is_active"),
		Notes:        r.str("notes"),
		CreatedAt:    created,
		UpdatedAt:    updated,
		DeletedAt:    deleted,
	}

	rec := model.Recipient{RecipientBase: base}

	switch t := model.RecipientType(r.str("type")); t {
	case model.RecipientIndividual:
		rec.Details = model.IndividualDetails{
			Birthday:     r.str("birthday"),
			Relationship: r.str("relationship"),
		}
	case model.RecipientFamily:
		members, err := r.list("family_members")
		if err != nil {
			return model.Recipient{}, fmt.Errorf("mapping recipient %s: %w", base.ID, err)
		}
		rec.Details = model.FamilyDetails{
			FamilyMembers:  members,
			PrimaryContact: r.str("primary_contact"),
		}
	case model.RecipientOrganization:
		rec.Details = model.OrganizationDetails{
			OrganizationType: r.str("organization_type"),
			TaxID:            r.str("tax_id"),
			ContactPerson:    r.str("contact_person"),
			ContactTitle:     r.str("contact_title"),
		}
	default:
		return model.Recipient{}, fmt.Errorf(
			"mapping recipient %s: %w %q", base.ID, model.ErrUnknownRecipientType, t,
		)
	}

	return rec, nil
}

// MapGiftRow converts a gifts row into a model.Gift. Contributors are
// loaded separately.
func MapGiftRow(r Row) (model.Gift, error) {
	created, updated, deleted, err := rowTimes(r)
	if err != nil {
		return model.Gift{}, fmt.Errorf("mapping gift %s: %w", r.str("id"), err)
	}

	return model.Gift{
		ID:          r.str("id"),
		RecipientID: r.str("recipient_id"),
		OccasionID:  r.str("occasion_id"),
		CategoryID:  r.str("category_id"),

		Name:        r.str("name"),
		Description: r.str("description"),
		Year:        r.integer("year"),

		PurchasePrice:    r.float("purchase_price"),
		PurchaseLocation: r.str("purchase_location"),
		PurchaseDate:     r.str("purchase_date"),
		PurchaseURL:      r.str("purchase_url"),

		Status:           model.GiftStatus(r.str("status")),
		WrappedDate:      r.str("wrapped_date"),
		ShippedDate:      r.str("shipped_date"),
		DeliveredDate:    r.str("delivered_date"),
		ThankYouReceived: r.boolean("thank_you_received"),
		ThankYouDate:     r.str("thank_you_date"),

		Carrier:          r.str("carrier"),
		TrackingNumber:   r.str("tracking_number"),
		ExpectedDelivery: r.str("expected_delivery"),

		IsTaxDeductible: r.boolean("is_tax_deductible"),
		TaxCategory:     r.str("tax_category"),

		IsSplitGift:      r.boolean("is_split_gift"),
		TotalGiftCost:    r.floatPtr("total_gift_cost"),
		UserContribution: r.floatPtr("user_contribution"),

		ReceiptImagePath: r.str("receipt_image_path"),
		ReceiptText:      r.str("receipt_text"),

		Notes:     r.str("notes"),
		CreatedAt: created,
		UpdatedAt: updated,
		DeletedAt: deleted,
	}, nil
}

// MapContributorRow converts a gift_contributors row.
func MapContributorRow(r Row) (model.GiftContributor, error) {
	created, updated, _, err := rowTimes(r)
	if err != nil {
		return model.GiftContributor{}, fmt.Errorf("mapping contributor %s: %w", r.str("id"), err)
	}
	return model.GiftContributor{
		ID:                 r.str("id"),
		GiftID:             r.str("gift_id"),
		ContributorName:    r.str("contributor_name"),
		ContributionAmount: r.float("contribution_amount"),
		IsCurrentUser:      r.boolean("is_current_user"),
		HasPaid:            r.boolean("has_paid"),
		Notes:              r.str("notes"),
		CreatedAt:          created,
		UpdatedAt:          updated,
	}, nil
}

// MapIdeaRow converts an ideas row into a model.Idea. A missing priority
// maps to the default.
func MapIdeaRow(r Row) (model.Idea, error) {
	tags, err := r.list("tags")
	if err != nil {
		return model.Idea{}, fmt.Errorf("mapping idea %s: %w", r.str("id"), err)
	}
	created, updated, deleted, err := rowTimes(r)
	if err != nil {
		return model.Idea{}, fmt.Errorf("mapping idea %s: %w", r.str("id"), err)
	}

	priority := r.integer("priority")
	if priority == 0 {
		priority = model.DefaultPriority
	}

	return model.Idea{
		ID:                r.str("id"),
		RecipientID:       r.str("recipient_id"),
		CategoryID:        r.str("category_id"),
		Name:              r.str("name"),
		Description:       r.str("description"),
		EstimatedPrice:    r.floatPtr("estimated_price"),
		SourceURL:         r.str("source_url"),
		Priority:          priority,
		ConvertedToGiftID: r.str("converted_to_gift_id"),
		ConvertedAt:       r.str("converted_at"),
		Notes:             r.str("notes"),
		Tags:              tags,
		CreatedAt:         created,
		UpdatedAt:         updated,
		DeletedAt:         deleted,
	}, nil
}

// MapOccasionRow converts an occasions row.
func MapOccasionRow(r Row) model.Occasion {
	return model.Occasion{
		ID:           r.str("id"),
		Name:         r.str("name"),
		Icon:         r.str("icon"),
		Color:        r.str("color"),
		IsRecurring:  r.boolean("is_recurring"),
		DefaultMonth: r.integer("default_month"),
		SortOrder:    r.integer("sort_order"),
	}
}

// MapCategoryRow converts a categories row.
func MapCategoryRow(r Row) model.Category {
	return model.Category{
		ID:        r.str("id"),
		Name:      r.str("name"),
		Icon:      r.str("icon"),
		Color:     r.str("color"),
		SortOrder: r.integer("sort_order"),
	}
}

// encodeList serializes a string list for a JSON text column. A nil list
// is stored as "[]".
func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// recipientVariantColumns returns the variant-specific column values in the
// order birthday, relationship, family_members, primary_contact,
// organization_type, tax_id, contact_person, contact_title. Columns of the
// other variants are NULL.
func recipientVariantColumns(rec model.Recipient) ([]interface{}, error) {
	cols := make([]interface{}, 8)

	switch d := rec.Details.(type) {
	case model.IndividualDetails:
		cols[0] = nullString(d.Birthday)
		cols[1] = nullString(d.Relationship)
	case model.FamilyDetails:
		members, err := encodeList(d.FamilyMembers)
		if err != nil {
			return nil, fmt.Errorf("encoding family_members: %w", err)
		}
		cols[2] = members
		cols[3] = nullString(d.PrimaryContact)
	case model.OrganizationDetails:
		cols[4] = nullString(d.OrganizationType)
		cols[5] = nullString(d.TaxID)
		cols[6] = nullString(d.ContactPerson)
		cols[7] = nullString(d.ContactTitle)
	default:
		return nil, fmt.Errorf("%w %q", model.ErrUnknownRecipientType, rec.Type())
	}

	return cols, nil
}
