package utils

import (
	"strings"
	"testing"
)

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"+79991234567",
		"89991234567",
		"8 999 123-45-67",
		"+7 999 123 45 67",
	}
	for _, phone := range valid {
		if !IsValidPhone(phone) {
			t.Errorf("phone %q rejected", phone)
		}
	}

	invalid := []string{
		"",
		"12345",
		"+7999123456",
		"+799912345678",
		"79991234567",
		"+89991234567",
		"8999123456a",
	}
	for _, phone := range invalid {
		if IsValidPhone(phone) {
			t.Errorf("phone %q accepted", phone)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("8 999 123-45-67"); got != "89991234567" {
		t.Fatalf("normalize = %q", got)
	}
}

func TestValidateStructWithPhoneRule(t *testing.T) {
	type form struct {
		Name  string `validate:"required,min=2"`
		Phone string `validate:"required,ruphone"`
		Text  string `validate:"omitempty,max=500"`
	}

	if errs := ValidateStruct(&form{Name: "Анна", Phone: "+79991234567"}); len(errs) != 0 {
		t.Fatalf("valid form rejected: %v", errs)
	}

	errs := ValidateStruct(&form{Name: "Я", Phone: "12345"})
	if _, ok := errs["Name"]; !ok {
		t.Error("short name passed validation")
	}
	if msg, ok := errs["Phone"]; !ok || msg != "Invalid phone format" {
		t.Errorf("phone error missing or wrong: %v", errs)
	}

	errs = ValidateStruct(&form{Name: "Анна", Phone: "89991234567", Text: strings.Repeat("ж", 501)})
	if _, ok := errs["Text"]; !ok {
		t.Error("over-long text passed validation")
	}
}

func TestFormatValidationErrors(t *testing.T) {
	out := FormatValidationErrors(map[string]string{"Phone": "Invalid phone format"})
	if out != "Phone: Invalid phone format" {
		t.Fatalf("unexpected format: %q", out)
	}
}
