package model

import "testing"

func TestFlattenPrefersNewFieldNames(t *testing.T) {
	form := &AddressForm{
		StreetAddress: "1 New Way",
		Street:        "2 Old Road",
		PostalCode:    "75001",
		ZipCode:       "99999",
		City:          "Paris",
		Country:       "FR",
	}

	payload := form.Flatten()
	if payload.StreetAddress != "1 New Way" {
		t.Errorf("streetAddress should win over street, got %q", payload.StreetAddress)
	}
	if payload.PostalCode != "75001" {
		t.Errorf("postalCode should win over zipCode, got %q", payload.PostalCode)
	}
}

func TestFlattenFallsBackToLegacyFieldNames(t *testing.T) {
	form := &AddressForm{
		Street:  "2 Old Road",
		ZipCode: "99999",
	}

	payload := form.Flatten()
	if payload.StreetAddress != "2 Old Road" {
		t.Errorf("expected legacy street fallback, got %q", payload.StreetAddress)
	}
	if payload.PostalCode != "99999" {
		t.Errorf("expected legacy zipCode fallback, got %q", payload.PostalCode)
	}
}

func TestFlattenDefaults(t *testing.T) {
	payload := (&AddressForm{City: "Lyon"}).Flatten()
	if payload.AddressType != "HOME" {
		t.Errorf("addressType should default to HOME, got %q", payload.AddressType)
	}
	if !payload.DefaultAddress {
		t.Error("defaultAddress should default to true")
	}

	explicit := false
	payload = (&AddressForm{AddressType: "WORK", DefaultAddress: &explicit}).Flatten()
	if payload.AddressType != "WORK" {
		t.Errorf("explicit addressType overridden: %q", payload.AddressType)
	}
	if payload.DefaultAddress {
		t.Error("explicit defaultAddress=false overridden")
	}
}

func TestFlattenNilForm(t *testing.T) {
	var form *AddressForm
	if form.Flatten() != nil {
		t.Fatal("nil form should flatten to nil")
	}
}
