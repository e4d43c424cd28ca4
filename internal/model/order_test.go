package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validOrder() Order {
	vehicle := Vehicle{
		LicensePlate: "1234ABC",
		Make:         "SEAT",
		Model:        "Ibiza",
		Activity:     ActivityCollection,
	}
	return Order{
		Header: Header{
			CompanyName:         "SEMAT",
			ShipmentID:          "EXP-001",
			AvailableAt:         "01/02/2025",
			DeliveryRequestedAt: "05/02/2025",
			NumberOfStops:       2,
			NumberOfVehicles:    1,
		},
		Stops: []Stop{
			{
				StopNumber: 1,
				Address:    Address{Street: "Calle Mayor 1", Province: "Madrid", PostalCode: "28001"},
				Contact:    &Contact{ContactPerson: "Ana", Phone: "600000000"},
				Vehicles:   []Vehicle{vehicle},
			},
			{
				StopNumber: 2,
				Address:    Address{Street: "Av. del Puerto 9", Province: "Valencia", PostalCode: "46021"},
				Vehicles:   []Vehicle{{LicensePlate: "1234ABC", Make: "SEAT", Activity: ActivityDelivery}},
			},
		},
	}
}

func TestOrderValidate(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		assert.NoError(t, validOrder().Validate())
	})

	t.Run("missing shipment id", func(t *testing.T) {
		o := validOrder()
		o.Header.ShipmentID = ""
		assert.Error(t, o.Validate())
	})

	t.Run("no stops", func(t *testing.T) {
		o := validOrder()
		o.Stops = nil
		assert.Error(t, o.Validate())
	})

	t.Run("stop without vehicles", func(t *testing.T) {
		o := validOrder()
		o.Stops[0].Vehicles = nil
		assert.Error(t, o.Validate())
	})

	t.Run("address missing postal code", func(t *testing.T) {
		o := validOrder()
		o.Stops[1].Address.PostalCode = ""
		assert.Error(t, o.Validate())
	})
}

func TestVehicleValidate(t *testing.T) {
	t.Run("plate and make required", func(t *testing.T) {
		assert.Error(t, Vehicle{Make: "SEAT"}.Validate())
		assert.Error(t, Vehicle{LicensePlate: "1234ABC"}.Validate())
	})

	t.Run("invalid activity", func(t *testing.T) {
		v := Vehicle{LicensePlate: "1234ABC", Make: "SEAT", Activity: Activity("Parked")}
		assert.Error(t, v.Validate())
	})

	t.Run("empty optional enums pass", func(t *testing.T) {
		v := Vehicle{LicensePlate: "1234ABC", Make: "SEAT"}
		assert.NoError(t, v.Validate())
	})

	t.Run("invalid color", func(t *testing.T) {
		v := Vehicle{LicensePlate: "1234ABC", Make: "SEAT", Color: Color("Purple")}
		assert.Error(t, v.Validate())
	})
}

func TestStopValidate(t *testing.T) {
	s := Stop{
		StopNumber: 0,
		Address:    Address{Street: "x", Province: "y", PostalCode: "z"},
		Vehicles:   []Vehicle{{LicensePlate: "1", Make: "m"}},
	}
	assert.Error(t, s.Validate(), "stop_number must be at least 1")

	s.StopNumber = 1
	assert.NoError(t, s.Validate())
}
