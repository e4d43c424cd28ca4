package extract

import (
	"errors"
	"fmt"
	"time"

	"orderapi/internal/convert"
	"orderapi/internal/model"
)

// Row labels as printed on the order sheets.
const (
	labelPlate       = "Matrícula / Bastidor:"
	labelMake        = "Marca:"
	labelModel       = "Modelo:"
	labelPickup      = "Punto de Recogida:"
	labelDelivery    = "Punto de Entrega:"
	labelContact     = "Persona de Contacto:"
	labelStreet      = "Dirección:"
	labelPostalCode  = "Código Postal:"
	labelProvince    = "Provincia:"
	labelPhone       = "Teléfono de Contacto:"
	labelComments    = "Observaciones:"
	companyName      = "SEMAT"
	unknownFieldText = "UNKNOWN"
)

// Self references of the header text items on the sheet.
const (
	refShipmentID  = "#/texts/5"
	refDeliveryDue = "#/texts/6"
)

// ErrLayout is returned when the converted content does not match the known
// order-sheet layout (vehicle block plus pickup and delivery tables).
var ErrLayout = errors.New("document does not match the order sheet layout")

// Builder extracts transport orders from converted content using the fixed
// sheet layout: table 0 describes the vehicle, table 1 the pickup point and
// table 2 the delivery point.
type Builder struct {
	now func() time.Time
}

// NewBuilder returns a Builder using wall-clock time for the availability date.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderAt returns a Builder with a fixed clock, for tests.
func NewBuilderAt(now func() time.Time) *Builder {
	return &Builder{now: now}
}

// Build assembles an Order from converted content. The order is validated
// before being returned.
func (b *Builder) Build(c *convert.Content) (*model.Order, error) {
	tables := c.Tables()
	if len(tables) < 3 {
		return nil, fmt.Errorf("%w: found %d tables, need 3", ErrLayout, len(tables))
	}

	shipmentID, _ := c.TextBySelfRef(refShipmentID)
	deliveryDue, _ := c.TextBySelfRef(refDeliveryDue)

	plate, vmake, vmodel := vehicleBlock(tables[0])

	origin, err := stopFromTable(tables[1], labelPickup, 1)
	if err != nil {
		return nil, err
	}
	dest, err := stopFromTable(tables[2], labelDelivery, 2)
	if err != nil {
		return nil, err
	}

	origin.Vehicles = []model.Vehicle{vehicle(plate, vmake, vmodel, model.ActivityCollection)}
	dest.Vehicles = []model.Vehicle{vehicle(plate, vmake, vmodel, model.ActivityDelivery)}

	if shipmentID == "" {
		shipmentID = unknownFieldText
	}

	order := &model.Order{
		Header: model.Header{
			CompanyName:         companyName,
			ShipmentID:          shipmentID,
			AvailableAt:         b.now().Format(dateLayout),
			DeliveryRequestedAt: FormatDate(deliveryDue),
			NumberOfStops:       2,
			NumberOfVehicles:    1,
		},
		Stops: []model.Stop{*origin, *dest},
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// vehicleBlock reads plate, make and model from the vehicle table. The model
// cell often repeats both its label and the make; both are stripped.
func vehicleBlock(t *convert.Table) (plate, vmake, vmodel string) {
	if len(t.Grid) > 0 {
		plate = FirstNonMatching(t.Grid[0], labelPlate)
	}
	if len(t.Grid) > 1 {
		vmake = StripPrefixFold(labelMake, FirstNonMatching(t.Grid[1], labelMake))
	}
	if len(t.Grid) > 2 {
		vmodel = StripPrefixFold(labelModel, FirstNonMatching(t.Grid[2], labelModel))
		vmodel = StripPrefixFold(vmake, vmodel)
	}
	return plate, vmake, vmodel
}

func vehicle(plate, vmake, vmodel string, activity model.Activity) model.Vehicle {
	if plate == "" {
		plate = unknownFieldText
	}
	if vmake == "" {
		vmake = unknownFieldText
	}
	return model.Vehicle{
		LicensePlate: plate,
		Make:         vmake,
		Model:        vmodel,
		Activity:     activity,
	}
}

// stopFromTable reads one stop block. Rows are fixed on the sheet:
// 0 location name, 1 contact person, 2 street, 3 postal code, 4 province,
// 5 phone, 6 observations.
func stopFromTable(t *convert.Table, nameLabel string, stopNumber int) (*model.Stop, error) {
	if len(t.Grid) < 6 {
		return nil, fmt.Errorf("%w: stop table has %d rows", ErrLayout, len(t.Grid))
	}

	address := model.Address{
		AddressName: FirstNonMatching(t.Grid[0], nameLabel),
		Street:      FirstNonMatching(t.Grid[2], labelStreet),
		Province:    FirstNonMatching(t.Grid[4], labelProvince),
		PostalCode:  FirstWord(FirstNonMatching(t.Grid[3], labelPostalCode)),
	}
	contact := &model.Contact{
		ContactPerson: FirstNonMatching(t.Grid[1], labelContact),
		Phone:         FirstNonMatching(t.Grid[5], labelPhone),
	}

	comments := ""
	if len(t.Grid) > 6 {
		comments = StripPrefixFold(labelComments, FirstNonMatching(t.Grid[6], labelComments))
	}

	return &model.Stop{
		StopNumber: stopNumber,
		Address:    address,
		Contact:    contact,
		Comments:   comments,
	}, nil
}
