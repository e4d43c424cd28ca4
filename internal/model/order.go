package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Activity marks what happens to a vehicle at a stop.
type Activity string

const (
	ActivityCollection Activity = "Collection"
	ActivityDelivery   Activity = "Delivery"
)

// Color is the declared vehicle color on the order sheet.
// An unreadable or missing color stays empty rather than guessing.
type Color string

const (
	ColorUnknown Color = "Unknown"
	ColorBlack   Color = "Black"
	ColorWhite   Color = "White"
	ColorGrey    Color = "Grey"
	ColorBlue    Color = "Blue"
	ColorRed     Color = "Red"
	ColorYellow  Color = "Yellow"
	ColorGreen   Color = "Green"
	ColorBrown   Color = "Brown"
)

var colorValues = []interface{}{
	ColorUnknown, ColorBlack, ColorWhite, ColorGrey,
	ColorBlue, ColorRed, ColorYellow, ColorGreen, ColorBrown,
}

// Address is a pickup or delivery location on an order sheet.
type Address struct {
	// AddressName is e.g. the name of the company located at that point.
	AddressName string `json:"address_name,omitempty"`
	Street      string `json:"street"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code"`
}

// Validate checks required address fields.
func (a Address) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Street, validation.Required),
		validation.Field(&a.Province, validation.Required),
		validation.Field(&a.PostalCode, validation.Required),
	)
}

// Contact is the person reachable at a stop.
type Contact struct {
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// Vehicle describes one transported vehicle at a stop.
type Vehicle struct {
	LicensePlate string `json:"license_plate"`
	// VIN is the unique identifier for a specific vehicle.
	VIN  string `json:"vin,omitempty"`
	Make string `json:"make"`
	// Model excludes the make even when the sheet repeats it.
	Model string `json:"model,omitempty"`
	Color Color  `json:"color,omitempty"`
	// ReleaseID is an alphanumeric tracking identifier,
	// e.g. "004A0724359VT002024".
	ReleaseID string   `json:"release_id,omitempty"`
	Weight    float64  `json:"weight,omitempty"`
	Volume    float64  `json:"volume,omitempty"`
	Activity  Activity `json:"activity,omitempty"`
}

// Validate checks required vehicle fields and enum membership.
func (v Vehicle) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.LicensePlate, validation.Required),
		validation.Field(&v.Make, validation.Required),
		validation.Field(&v.Color, validation.In(colorValues...)),
		validation.Field(&v.Activity, validation.In(ActivityCollection, ActivityDelivery)),
	)
}

// Stop is one scheduled halt of the transport, in route order.
type Stop struct {
	StopNumber int       `json:"stop_number"`
	Address    Address   `json:"address"`
	Contact    *Contact  `json:"contact,omitempty"`
	Vehicles   []Vehicle `json:"vehicles"`
	Comments   string    `json:"comments,omitempty"`
}

// Validate checks the stop and everything nested under it.
func (s Stop) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.StopNumber, validation.Required, validation.Min(1)),
		validation.Field(&s.Address),
		validation.Field(&s.Vehicles, validation.Required),
	)
}

// Header carries order-level metadata from the top of the sheet.
type Header struct {
	CompanyName string `json:"company_name,omitempty"`
	// CustomerCode is the location code, usually G3060 or G3622.
	CustomerCode string `json:"customer_code,omitempty"`
	ShipmentID   string `json:"shipment_id"`
	// AvailableAt is the order creation date, DD/MM/YYYY.
	AvailableAt string `json:"available_at"`
	// DeliveryRequestedAt is the committed delivery date, DD/MM/YYYY.
	DeliveryRequestedAt string `json:"delivery_requested_at"`
	SenderEmail         string `json:"sender_email,omitempty"`
	NumberOfStops       int    `json:"number_of_stops"`
	NumberOfVehicles    int    `json:"number_of_vehicles"`
}

// Validate checks required header fields.
func (h Header) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.ShipmentID, validation.Required),
		validation.Field(&h.NumberOfStops, validation.Required, validation.Min(1)),
		validation.Field(&h.NumberOfVehicles, validation.Required, validation.Min(1)),
	)
}

// Order is one extracted transport order: a header plus its stops.
type Order struct {
	Header Header `json:"header"`
	Stops  []Stop `json:"stops"`
}

// Validate checks the full order tree.
func (o Order) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Header),
		validation.Field(&o.Stops, validation.Required),
	)
}

// OrderRecord is a persisted order with its identifiers.
type OrderRecord struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ShipmentID string    `json:"shipment_id"`
	Order      Order     `json:"order"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderList wraps multiple orders for JSON output.
type OrderList struct {
	Orders []Order `json:"orders"`
}
