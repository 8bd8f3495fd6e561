package material

import (
	"errors"
	"strings"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultUnit is used when a material is created without a unit.
const DefaultUnit = "tons"

var (
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrMaterialIsNotConstructed = errors.New("Material must be created via NewMaterial constructor")
)

type Material struct {
	kernel.Versioned

	id    kernel.UUID
	name  string
	stock decimal.Decimal
	unit  string

	guard guard.ConstructorGuard
}

// NewMaterial creates a material with an opening stock. An empty unit
// defaults to DefaultUnit.
func NewMaterial(id kernel.UUID, name string, stock decimal.Decimal, unit string) (*Material, error) {
	return RestoreMaterial(id, name, stock, unit, 0)
}

// Seed creates an unknown material at zero stock. It is used when a
// completed order names a material the ledger has never seen.
func Seed(name string) (*Material, error) {
	return NewMaterial(kernel.NewUUID(), name, decimal.Zero, DefaultUnit)
}

func RestoreMaterial(id kernel.UUID, name string, stock decimal.Decimal, unit string, version int64) (*Material, error) {
	m := &Material{
		Versioned: kernel.RestoreVersion(version),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setStock(stock),
		m.setUnit(unit),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Material) Validate() error {
	if m == nil {
		return ErrMaterialIsNotConstructed
	}
	return m.guard.Validate(ErrMaterialIsNotConstructed)
}

func (m *Material) ID() kernel.UUID {
	return m.id
}

func (m *Material) Name() string {
	return m.name
}

func (m *Material) Stock() decimal.Decimal {
	return m.stock
}

func (m *Material) Unit() string {
	return m.unit
}

// IsLow reports whether stock is strictly below threshold.
func (m *Material) IsLow(threshold decimal.Decimal) bool {
	return m.stock.LessThan(threshold)
}

// ApplyDelta adds a signed delta to stock, clamping at zero. The returned
// flag is true when the clamp discarded part of a negative delta.
func (m *Material) ApplyDelta(delta decimal.Decimal) bool {
	stock, clamped := kernel.ClampedAdd(m.stock, delta.Round(kernel.QuantityPrecision))
	m.stock = stock
	return clamped
}

// Deduct removes quantity from stock. See ApplyDelta.
func (m *Material) Deduct(quantity decimal.Decimal) bool {
	return m.ApplyDelta(quantity.Neg())
}

func (m *Material) Rename(name string) error {
	return m.setName(name)
}

func (m *Material) ChangeUnit(unit string) error {
	return m.setUnit(unit)
}

func (m *Material) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Material) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	m.name = name
	return nil
}

func (m *Material) setStock(stock decimal.Decimal) error {
	s, err := kernel.NonNegativeQuantity("stock quantity", stock)
	if err != nil {
		return err
	}
	m.stock = s
	return nil
}

func (m *Material) setUnit(unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = DefaultUnit
	}
	m.unit = unit
	return nil
}
