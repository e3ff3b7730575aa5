package customer

import (
	"strings"

	"github.com/xenking/backoffice/internal/draft"
)

// DefaultLanguage is preselected on the create form.
const DefaultLanguage = "English [Default]"

// Languages offered for customer notifications.
var Languages = []string{DefaultLanguage, "French", "Spanish", "German"}

// TaxSettings choices.
var TaxSettings = []string{"Collect tax", "Don't collect tax", "Collect tax unless exempt"}

func text(name, label string, ref func(*Customer) *string, opts ...draft.FieldOption) draft.Field[Customer] {
	return draft.StringOf(name, label, ref, opts...)
}

func statusField() draft.Field[Customer] {
	return draft.Enum("status", "Status", Statuses,
		func(c *Customer) Status { return c.Status },
		func(c *Customer, v Status) { c.Status = v },
	)
}

// EditSchema is the customer detail edit form.
var EditSchema = draft.NewSchema("Customer",
	text("name", "Name", func(c *Customer) *string { return &c.Name }, draft.Rule("required")),
	text("email", "Email", func(c *Customer) *string { return &c.Email }, draft.Rule("required,email")),
	text("phone", "Phone", func(c *Customer) *string { return &c.Phone }),
	text("address", "Address", func(c *Customer) *string { return &c.Address }),
	statusField(),
	text("language", "Language", func(c *Customer) *string { return &c.Language },
		draft.Rule("omitempty,oneof="+oneOf(Languages))),
	draft.BoolOf("marketingEmails", "Email marketing", func(c *Customer) *bool { return &c.MarketingEmails }),
	draft.BoolOf("marketingSMS", "SMS marketing", func(c *Customer) *bool { return &c.MarketingSMS }),
	text("notes", "Notes", func(c *Customer) *string { return &c.Notes }),
	text("tags", "Tags", func(c *Customer) *string { return &c.Tags }),
).WithMessage("Customer Name and a valid Email are required.")

// Form is the new customer form. It differs from Customer: the name is split
// and the phone number carries a separate country code.
type Form struct {
	FirstName       string
	LastName        string
	Language        string
	Email           string
	PhoneCode       string
	PhoneNumber     string
	MarketingEmails bool
	MarketingSMS    bool
	VATNumber       string
	TaxSettings     string
	Notes           string
	Tags            string
}

func formText(name, label string, ref func(*Form) *string, opts ...draft.FieldOption) draft.Field[Form] {
	return draft.StringOf(name, label, ref, opts...)
}

// CreateSchema is the new customer form.
var CreateSchema = draft.NewSchema("Customer",
	formText("firstName", "First name", func(f *Form) *string { return &f.FirstName }, draft.Rule("required")),
	formText("lastName", "Last name", func(f *Form) *string { return &f.LastName }),
	formText("language", "Language", func(f *Form) *string { return &f.Language },
		draft.Rule("oneof="+oneOf(Languages))),
	formText("email", "Email", func(f *Form) *string { return &f.Email }, draft.Rule("required,email")),
	formText("phoneCode", "Country code", func(f *Form) *string { return &f.PhoneCode }),
	formText("phoneNumber", "Phone number", func(f *Form) *string { return &f.PhoneNumber }),
	draft.BoolOf("marketingEmails", "Email marketing", func(f *Form) *bool { return &f.MarketingEmails }),
	draft.BoolOf("marketingSMS", "SMS marketing", func(f *Form) *bool { return &f.MarketingSMS }),
	formText("vatNumber", "VAT number", func(f *Form) *string { return &f.VATNumber }),
	formText("taxSettings", "Tax settings", func(f *Form) *string { return &f.TaxSettings }),
	formText("notes", "Notes", func(f *Form) *string { return &f.Notes }),
	formText("tags", "Tags", func(f *Form) *string { return &f.Tags }),
).WithMessage("First name and a valid Email are required.")

// Template returns the initial create form.
func Template() Form {
	return Form{
		Language:    DefaultLanguage,
		PhoneCode:   "GB",
		TaxSettings: TaxSettings[0],
	}
}

// oneOf renders values as a validator oneof parameter. Values containing
// spaces are quoted.
func oneOf(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if strings.ContainsAny(v, " ") {
			v = "'" + v + "'"
		}
		parts[i] = v
	}
	return strings.Join(parts, " ")
}
