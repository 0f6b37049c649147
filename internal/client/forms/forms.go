// Package forms validates user input before it is sent to the backend.
//
// Each form is a struct carrying validator tags. Validation stops at the
// first failing field and reports the message of that field's rule.
package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Error is a validation failure with the message to show.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return common.ErrorValidation
}

const (
	msgItemRequired  = "Name and SKU are required"
	msgItemNegative  = "Quantities and prices cannot be negative"
	msgSupplier      = "Supplier name is required"
	msgNoLines       = "At least one item is required"
	msgLines         = "All items must have a valid selection and quantity greater than 0"
	msgLoginRequired = "Username and password are required"
	msgSignupFields  = "Username, email and password are required"
	msgEmail         = "Please enter a valid email address"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// numeric rules on money fields compare the decimal value
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// messages maps a top-level field, or field.tag, to its message.
type messages map[string]string

func check(form any, msgs messages) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	field := topLevelField(fe.StructNamespace())
	if msg, ok := msgs[field+"."+fe.Tag()]; ok {
		return &Error{Field: field, Message: msg}
	}
	if msg, ok := msgs[field]; ok {
		return &Error{Field: field, Message: msg}
	}
	return &Error{Field: field, Message: fe.Error()}
}

// topLevelField turns "OrderForm.Items[0].Quantity" into "Items".
func topLevelField(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	if i := strings.IndexAny(ns, ".["); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

// ItemForm is the inventory create/edit form.
type ItemForm struct {
	Name         string `validate:"required"`
	SKU          string `validate:"required"`
	Description  string
	Quantity     int             `validate:"gte=0"`
	UnitPrice    decimal.Decimal `validate:"gte=0"`
	Category     string
	Location     string
	MinimumStock int `validate:"gte=0"`
	SupplierID   *int64
}

var itemMessages = messages{
	"Name":         msgItemRequired,
	"SKU":          msgItemRequired,
	"Quantity":     msgItemNegative,
	"UnitPrice":    msgItemNegative,
	"MinimumStock": msgItemNegative,
}

// Validate trims the text fields and checks the form.
func (f *ItemForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.SKU = strings.TrimSpace(f.SKU)
	return check(f, itemMessages)
}

func (f *ItemForm) Input() api.ItemInput {
	return api.ItemInput{
		Name:         f.Name,
		Description:  strings.TrimSpace(f.Description),
		SKU:          f.SKU,
		Quantity:     f.Quantity,
		UnitPrice:    f.UnitPrice,
		Category:     strings.TrimSpace(f.Category),
		Location:     strings.TrimSpace(f.Location),
		MinimumStock: f.MinimumStock,
		SupplierID:   f.SupplierID,
	}
}

// ItemFormFrom prefills the edit form from an existing item.
func ItemFormFrom(it api.Item) ItemForm {
	return ItemForm{
		Name:         it.Name,
		SKU:          it.SKU,
		Description:  it.Description,
		Quantity:     it.Quantity,
		UnitPrice:    it.UnitPrice,
		Category:     it.Category,
		Location:     it.Location,
		MinimumStock: it.MinimumStock,
		SupplierID:   it.SupplierID,
	}
}

type OrderLineForm struct {
	InventoryItemID int64 `validate:"gt=0"`
	Quantity        int   `validate:"gt=0"`
	UnitPrice       decimal.Decimal
}

// Total is quantity times unit price.
func (l OrderLineForm) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderForm is the purchase order form.
type OrderForm struct {
	SupplierName     string `validate:"required"`
	SupplierContact  string
	ExpectedDelivery string
	Status           string          `validate:"omitempty,oneof=pending approved ordered received cancelled"`
	Items            []OrderLineForm `validate:"min=1,dive"`
}

var orderMessages = messages{
	"SupplierName": msgSupplier,
	"Items.min":    msgNoLines,
	"Items":        msgLines,
	"Status":       "Unknown order status",
}

func (f *OrderForm) Validate() error {
	f.SupplierName = strings.TrimSpace(f.SupplierName)
	return check(f, orderMessages)
}

// Total sums the line totals.
func (f *OrderForm) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range f.Items {
		total = total.Add(l.Total())
	}
	return total
}

func (f *OrderForm) Input() api.OrderInput {
	in := api.OrderInput{
		SupplierName:     f.SupplierName,
		SupplierContact:  strings.TrimSpace(f.SupplierContact),
		ExpectedDelivery: strings.TrimSpace(f.ExpectedDelivery),
		Status:           f.Status,
		Items:            make([]api.OrderLineInput, 0, len(f.Items)),
	}
	for _, l := range f.Items {
		in.Items = append(in.Items, api.OrderLineInput{
			InventoryItemID: l.InventoryItemID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
		})
	}
	return in
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (f *LoginForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	return check(f, messages{"Username": msgLoginRequired, "Password": msgLoginRequired})
}

type SignupForm struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (f *SignupForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	return check(f, messages{
		"Username":       msgSignupFields,
		"Email.required": msgSignupFields,
		"Email.email":    msgEmail,
		"Password":       msgSignupFields,
	})
}
