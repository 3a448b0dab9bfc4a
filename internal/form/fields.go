// Package form implements multi-step data-collection form sessions layered
// on top of the conversation flow. Forms are declared as ordered field lists
// so new form types plug in without touching the engine.
package form

import (
	"strconv"
	"strings"
)

// Field is one step of a form: a prompt, a validator and a normalizer.
// Validators and error texts are data; the engine never special-cases a
// field by name.
type Field struct {
	Name      string
	Prompt    string
	ErrorText string
	Validate  func(input string) bool
	Normalize func(input string) string
}

// Definition is a complete form type: an ordered field list plus the
// acknowledgment sent when the form starts.
type Definition struct {
	Type   string
	Ack    string
	Fields []Field
}

// TypePurchaseInquiry identifies the purchase-inquiry form.
const TypePurchaseInquiry = "purchase_inquiry"

// Field names collected by the purchase-inquiry form.
const (
	FieldBuyerType = "buyer_type"
	FieldName      = "name"
	FieldAge       = "age"
	FieldGender    = "gender"
	FieldCity      = "city"
	FieldPurpose   = "purpose"
)

// Purpose codes and their meanings for the purchase-inquiry form.
const (
	PurposeEndUser     = "end_user"
	PurposeBulk        = "qty_banyak"
	PurposeOnline      = "online"
	PurposePartnership = "kerjasama_bisnis"
)

// purposeByCode maps the numeric answer to the stored purpose value.
var purposeByCode = map[string]string{
	"1": PurposeEndUser,
	"2": PurposeBulk,
	"3": PurposeOnline,
	"4": PurposePartnership,
}

var purchaseInquiryForm = Definition{
	Type: TypePurchaseInquiry,
	Ack:  "Oke, aku bantuin prosesnya ya! 😊",
	Fields: []Field{
		{
			Name: FieldBuyerType,
			Prompt: "Kamu beli sebagai apa nih?\n\nKetik:\n" +
				"• *Perusahaan* - Untuk pembelian perusahaan\n" +
				"• *Individu* - Untuk pembelian pribadi",
			ErrorText: "Pilih *Perusahaan* atau *Individu* ya! 😊",
			Validate: func(input string) bool {
				v := strings.ToLower(strings.TrimSpace(input))
				return v == "perusahaan" || v == "individu"
			},
			Normalize: func(input string) string {
				return strings.ToLower(strings.TrimSpace(input))
			},
		},
		{
			Name:      FieldName,
			Prompt:    "Boleh tau nama lengkap kamu? 😊",
			ErrorText: "Nama minimal 3 huruf ya!",
			Validate: func(input string) bool {
				return len(strings.TrimSpace(input)) >= 3
			},
			Normalize: strings.TrimSpace,
		},
		{
			Name:      FieldAge,
			Prompt:    "Umur kamu berapa? (angka aja ya)",
			ErrorText: "Umur harus angka antara 17-100 tahun ya!",
			Validate: func(input string) bool {
				age, err := strconv.Atoi(strings.TrimSpace(input))
				return err == nil && age >= 17 && age <= 100
			},
			Normalize: strings.TrimSpace,
		},
		{
			Name: FieldGender,
			Prompt: "Jenis kelamin?\n\nKetik:\n" +
				"• *L* - Laki-laki\n" +
				"• *P* - Perempuan",
			ErrorText: "Ketik *L* atau *P* ya! 😊",
			Validate: func(input string) bool {
				v := strings.ToLower(strings.TrimSpace(input))
				return v == "l" || v == "p"
			},
			Normalize: func(input string) string {
				return strings.ToUpper(strings.TrimSpace(input))
			},
		},
		{
			Name:      FieldCity,
			Prompt:    "Kamu ada di kota mana?",
			ErrorText: "Nama kota minimal 3 huruf ya!",
			Validate: func(input string) bool {
				return len(strings.TrimSpace(input)) >= 3
			},
			Normalize: strings.TrimSpace,
		},
		{
			Name: FieldPurpose,
			Prompt: "Tujuan pembeliannya apa nih?\n\nKetik angka:\n" +
				"1️⃣ - Buat dipakai sendiri (end user)\n" +
				"2️⃣ - Beli dalam jumlah banyak\n" +
				"3️⃣ - Beli online\n" +
				"4️⃣ - Kerjasama bisnis",
			ErrorText: "Ketik angka 1-4 ya! 😊",
			Validate: func(input string) bool {
				_, ok := purposeByCode[strings.TrimSpace(input)]
				return ok
			},
			Normalize: func(input string) string {
				return purposeByCode[strings.TrimSpace(input)]
			},
		},
	},
}

// Lookup returns the form definition for the given type.
func Lookup(formType string) (Definition, bool) {
	if formType == TypePurchaseInquiry {
		return purchaseInquiryForm, true
	}
	return Definition{}, false
}
