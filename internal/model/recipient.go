package model

import (
	"errors"
	"time"
)

// RecipientType discriminates the recipient variants.
type RecipientType string

// Recipient type constants.
const (
	RecipientIndividual   RecipientType = "individual"
	RecipientFamily       RecipientType = "family"
	RecipientOrganization RecipientType = "organization"
)

// DefaultCountry is applied when a recipient has no country.
const DefaultCountry = "USA"

// RecipientTypes lists the variants in display order.
var RecipientTypes = []RecipientType{
	RecipientIndividual,
	RecipientFamily,
	RecipientOrganization,
}

// ErrUnknownRecipientType is returned when a stored or supplied recipient
// type is not one of the known variants.
var ErrUnknownRecipientType = errors.New("unknown recipient type")

// Label returns the display label for the type.
func (t RecipientType) Label() string {
	switch t {
	case RecipientIndividual:
		return "Individual"
	case RecipientFamily:
		return "Family"
	case RecipientOrganization:
		return "Organization"
	default:
		return string(t)
	}
}

// RecipientBase holds the attributes shared by every recipient variant.
// Empty strings mean the field is absent.
type RecipientBase struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	AddressLine1 string     `json:"address_line1,omitempty"`
	AddressLine2 string     `json:"address_line2,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	PostalCode   string     `json:"postal_code,omitempty"`
	Country      string     `json:"country"`
	BudgetLimit  *float64   `json:"budget_limit,omitempty"`
	Interests    string     `json:"interests,omitempty"`
	Tags         []string   `json:"tags"`
	AvatarPath   string     `json:"avatar_path,omitempty"`
	IsActive     bool       `json:"is_active"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// RecipientDetails is the variant-specific part of a recipient. It is
// implemented only by IndividualDetails, FamilyDetails and
// OrganizationDetails.
type RecipientDetails interface {
	RecipientType() RecipientType
	isRecipientDetails()
}

// IndividualDetails are the fields of an individual recipient.
type IndividualDetails struct {
	Birthday     string `json:"birthday,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// FamilyDetails are the fields of a family recipient. Members keep their
// order.
type FamilyDetails struct {
	FamilyMembers  []string `json:"family_members"`
	PrimaryContact string   `json:"primary_contact,omitempty"`
}

// OrganizationDetails are the fields of an organization recipient.
type OrganizationDetails struct {
	OrganizationType string `json:"organization_type,omitempty"`
	TaxID            string `json:"tax_id,omitempty"`
	ContactPerson    string `json:"contact_person,omitempty"`
	ContactTitle     string `json:"contact_title,omitempty"`
}

func (IndividualDetails) RecipientType() RecipientType   { return RecipientIndividual }
func (FamilyDetails) RecipientType() RecipientType       { return RecipientFamily }
func (OrganizationDetails) RecipientType() RecipientType { return RecipientOrganization }

func (IndividualDetails) isRecipientDetails()   {}
func (FamilyDetails) isRecipientDetails()       {}
func (OrganizationDetails) isRecipientDetails() {}

// Recipient is a person, family, or organization gifts are given to.
// The variant is carried by Details and cannot be changed after creation.
type Recipient struct {
	RecipientBase
	Details RecipientDetails `json:"details"`
}

// Type returns the recipient's discriminator, or "" when Details is unset.
func (r Recipient) Type() RecipientType {
	if r.Details == nil {
		return ""
	}
	return r.Details.RecipientType()
}

// Individual returns the individual details when r is an individual.
func (r Recipient) Individual() (IndividualDetails, bool) {
	d, ok := r.Details.(IndividualDetails)
	return d, ok
}

// Family returns the family details when r is a family.
func (r Recipient) Family() (FamilyDetails, bool) {
	d, ok := r.Details.(FamilyDetails)
	return d, ok
}

// Organization returns the organization details when r is an organization.
func (r Recipient) Organization() (OrganizationDetails, bool) {
	d, ok := r.Details.(OrganizationDetails)
	return d, ok
}

// DetailsFor returns empty details of the given variant.
func DetailsFor(t RecipientType) (RecipientDetails, error) {
	switch t {
	case RecipientIndividual:
		return IndividualDetails{}, nil
	case RecipientFamily:
		return FamilyDetails{FamilyMembers: []string{}}, nil
	case RecipientOrganization:
		return OrganizationDetails{}, nil
	default:
		return nil, ErrUnknownRecipientType
	}
}
