package model

import (
	"strconv"
	"strings"
)

// Form field names used as keys in validation error maps.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
)

// User-facing validation messages. These match the copy the product has
// always shown; do not reword them without a product decision.
const (
	MsgNameRequired     = "Name is required"
	MsgDescRequired     = "Description is required"
	MsgPriceRequired    = "Price is required"
	MsgPricePositive    = "Price must be a positive number"
	MsgCategoryRequired = "Category is required"

	MsgAllFieldsRequired = "All fields are required"
	MsgPasswordMismatch  = "Passwords do not match"
)

// Draft holds unvalidated create/edit form input for an item. Price stays
// text until validation parses it, so the form can echo back exactly what
// the user typed.
type Draft struct {
	Name        string
	Description string
	Price       string
	Category    string
}

// DraftFromItem seeds an edit form from an existing item.
func DraftFromItem(it Item) Draft {
	return Draft{
		Name:        it.Name,
		Description: it.Description,
		Price:       strconv.FormatFloat(it.Price, 'f', -1, 64),
		Category:    it.Category,
	}
}

// Validate evaluates every field independently and returns a field→message
// map; an empty map means the draft is valid. All fields are always
// evaluated so all errors surface together. Safe to call on a zero Draft.
func (d Draft) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		errs[FieldName] = MsgNameRequired
	}

	if strings.TrimSpace(d.Description) == "" {
		errs[FieldDescription] = MsgDescRequired
	}

	if d.Price == "" {
		errs[FieldPrice] = MsgPriceRequired
	} else if p, err := strconv.ParseFloat(d.Price, 64); err != nil || !(p > 0) {
		// !(p > 0) also rejects NaN, which ParseFloat accepts.
		errs[FieldPrice] = MsgPricePositive
	}

	if strings.TrimSpace(d.Category) == "" {
		errs[FieldCategory] = MsgCategoryRequired
	}

	return errs
}

// Item converts a valid draft into an item ready for create/update
// requests. Call Validate first; an unparsable price is the only error.
func (d Draft) Item() (Item, error) {
	price, err := strconv.ParseFloat(d.Price, 64)
	if err != nil {
		return Item{}, err
	}

	return Item{
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Category:    d.Category,
	}, nil
}

// Registration holds unvalidated sign-up form input.
type Registration struct {
	Username string
	Password string
	Confirm  string
}

// Validate returns a single user-facing message, or "" when the
// registration form may be submitted.
func (r Registration) Validate() string {
	if r.Username == "" || r.Password == "" || r.Confirm == "" {
		return MsgAllFieldsRequired
	}
	if r.Password != r.Confirm {
		return MsgPasswordMismatch
	}
	return ""
}
