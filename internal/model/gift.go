package model

import "time"

// GiftStatus is the lifecycle stage of a gift.
type GiftStatus string

// Gift status constants, in lifecycle order.
const (
	GiftPurchased GiftStatus = "purchased"
	GiftWrapped   GiftStatus = "wrapped"
	GiftShipped   GiftStatus = "shipped"
	GiftDelivered GiftStatus = "delivered"
)

// GiftStatuses lists the statuses in lifecycle order.
var GiftStatuses = []GiftStatus{GiftPurchased, GiftWrapped, GiftShipped, GiftDelivered}

// Label returns the display label for the status.
func (s GiftStatus) Label() string {
	switch s {
	case GiftPurchased:
		return "Purchased"
	case GiftWrapped:
		return "Wrapped"
	case GiftShipped:
		return "Shipped"
	case GiftDelivered:
		return "Delivered"
	default:
		return string(s)
	}
}

// Shipping carriers.
const (
	CarrierUSPS   = "usps"
	CarrierUPS    = "ups"
	CarrierFedEx  = "fedex"
	CarrierAmazon = "amazon"
	CarrierDHL    = "dhl"
	CarrierOther  = "other"
)

// Carriers lists the supported shipping carriers.
var Carriers = []string{CarrierUSPS, CarrierUPS, CarrierFedEx, CarrierAmazon, CarrierDHL, CarrierOther}

// Tax categories.
const (
	TaxBusiness = "business"
	TaxCharity  = "charity"
)

// Gift is a purchased item tied to a recipient. The stage dates
// (wrapped, shipped, delivered) are free-form and not checked against Status.
type Gift struct {
	ID          string `json:"id"`
	RecipientID string `json:"recipient_id"`
	OccasionID  string `json:"occasion_id,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Year        int    `json:"year"`

	PurchasePrice    float64 `json:"purchase_price"`
	PurchaseLocation string  `json:"purchase_location,omitempty"`
	PurchaseDate     string  `json:"purchase_date,omitempty"`
	PurchaseURL      string  `json:"purchase_url,omitempty"`

	Status           GiftStatus `json:"status"`
	WrappedDate      string     `json:"wrapped_date,omitempty"`
	ShippedDate      string     `json:"shipped_date,omitempty"`
	DeliveredDate    string     `json:"delivered_date,omitempty"`
	ThankYouReceived bool       `json:"thank_you_received"`
	ThankYouDate     string     `json:"thank_you_date,omitempty"`

	Carrier          string `json:"carrier,omitempty"`
	TrackingNumber   string `json:"tracking_number,omitempty"`
	ExpectedDelivery string `json:"expected_delivery,omitempty"`

	IsTaxDeductible bool   `json:"is_tax_deductible"`
	TaxCategory     string `json:"tax_category,omitempty"`

	IsSplitGift      bool              `json:"is_split_gift"`
	TotalGiftCost    *float64          `json:"total_gift_cost,omitempty"`
	UserContribution *float64          `json:"user_contribution,omitempty"`
	Contributors     []GiftContributor `json:"contributors,omitempty"`

	ReceiptImagePath string `json:"receipt_image_path,omitempty"`
	ReceiptText      string `json:"receipt_text,omitempty"`

	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// GiftContributor is a person sharing the cost of a split gift.
// It cannot exist without its gift.
type GiftContributor struct {
	ID                 string    `json:"id"`
	GiftID             string    `json:"gift_id"`
	ContributorName    string    `json:"contributor_name"`
	ContributionAmount float64   `json:"contribution_amount"`
	IsCurrentUser      bool      `json:"is_current_user"`
	HasPaid            bool      `json:"has_paid"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
