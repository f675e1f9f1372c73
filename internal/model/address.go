package model

type AddressType string

const (
	AddressTypeHome  AddressType = "home"
	AddressTypeWork  AddressType = "work"
	AddressTypeOther AddressType = "other"
)

type Address struct {
	ID      string      `json:"id"`
	UserID  string      `json:"userId"`
	Type    AddressType `json:"type"`
	Street  string      `json:"street"`
	City    string      `json:"city"`
	State   string      `json:"state"`
	ZipCode string      `json:"zipCode"`
	Country string      `json:"country"`
}

// AddressForm carries an address as entered on a screen. Older screens used
// street/zipCode, newer ones streetAddress/postalCode; both are accepted and
// resolved by Flatten.
type AddressForm struct {
	StreetAddress  string `json:"streetAddress,omitempty"`
	Street         string `json:"street,omitempty"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postalCode,omitempty"`
	ZipCode        string `json:"zipCode,omitempty"`
	Country        string `json:"country"`
	AddressType    string `json:"addressType,omitempty"`
	DefaultAddress *bool  `json:"defaultAddress,omitempty"`
}

// AddressPayload is the wire shape the user service expects for a nested
// address on user create/update.
type AddressPayload struct {
	StreetAddress  string `json:"streetAddress"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	PostalCode     string `json:"postalCode"`
	AddressType    string `json:"addressType"`
	DefaultAddress bool   `json:"defaultAddress"`
}

// Flatten maps a form to the wire payload. Precedence:
//   - streetAddress wins over street
//   - postalCode wins over zipCode
//   - addressType defaults to HOME when omitted
//   - defaultAddress defaults to true when omitted
func (f *AddressForm) Flatten() *AddressPayload {
	if f == nil {
		return nil
	}

	street := f.StreetAddress
	if street == "" {
		street = f.Street
	}

	postal := f.PostalCode
	if postal == "" {
		postal = f.ZipCode
	}

	addrType := f.AddressType
	if addrType == "" {
		addrType = "HOME"
	}

	isDefault := true
	if f.DefaultAddress != nil {
		isDefault = *f.DefaultAddress
	}

	return &AddressPayload{
		StreetAddress:  street,
		City:           f.City,
		State:          f.State,
		Country:        f.Country,
		PostalCode:     postal,
		AddressType:    addrType,
		DefaultAddress: isDefault,
	}
}
