package domain

import (
	"time"

	"github.com/google/uuid"
)

// SaleState is the lifecycle state of a venta. A sale is created CONFIRMADA
// and moves exactly once to ANULADA or REEMBOLSADA; it never moves back.
type SaleState string

const (
	SaleConfirmed SaleState = "CONFIRMADA"
	SaleVoided    SaleState = "ANULADA"
	SaleRefunded  SaleState = "REEMBOLSADA"
)

func (s SaleState) Valid() bool {
	switch s {
	case SaleConfirmed, SaleVoided, SaleRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving to next.
// Only CONFIRMADA has outgoing edges.
func (s SaleState) CanTransitionTo(next SaleState) bool {
	if s != SaleConfirmed {
		return false
	}
	return next == SaleVoided || next == SaleRefunded
}

// CancellationType distinguishes a plain void from a refund.
type CancellationType string

const (
	CancellationVoid   CancellationType = "ANULACION"
	CancellationRefund CancellationType = "REEMBOLSO"
)

func (t CancellationType) Valid() bool {
	return t == CancellationVoid || t == CancellationRefund
}

// TargetSaleState returns the sale state this cancellation type produces.
func (t CancellationType) TargetSaleState() SaleState {
	if t == CancellationRefund {
		return SaleRefunded
	}
	return SaleVoided
}

// BoardingState is the per-sale boarding status for one trip occurrence.
type BoardingState string

const (
	BoardingPending    BoardingState = "PENDIENTE"
	BoardingBoarded    BoardingState = "EMBARCADO"
	BoardingNotBoarded BoardingState = "NO_EMBARCADO"
)

func (b BoardingState) Valid() bool {
	switch b {
	case BoardingPending, BoardingBoarded, BoardingNotBoarded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the boarding state machine allows moving to
// next. EMBARCADO and NO_EMBARCADO are terminal, and a no-op transition is
// rejected rather than silently accepted.
func (b BoardingState) CanTransitionTo(next BoardingState) bool {
	if b != BoardingPending {
		return false
	}
	return next == BoardingBoarded || next == BoardingNotBoarded
}

type VesselState string

const (
	VesselActive      VesselState = "ACTIVA"
	VesselMaintenance VesselState = "MANTENIMIENTO"
	VesselInactive    VesselState = "INACTIVA"
)

func (v VesselState) Valid() bool {
	switch v {
	case VesselActive, VesselMaintenance, VesselInactive:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin    Role = "ADMINISTRADOR"
	RoleSeller   Role = "VENDEDOR"
	RoleOperator Role = "OPERADOR_EMBARCACION"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleOperator:
		return true
	}
	return false
}

type OperatorState string

const (
	OperatorActive   OperatorState = "ACTIVO"
	OperatorInactive OperatorState = "INACTIVO"
)

// MaxVesselCapacity is the hard ceiling for a single vessel.
const MaxVesselCapacity = 500

// Occurrence identifies one trip: the tuple seat capacity is checked against.
// TravelDate carries only the calendar day; TravelTime is an "HH:MM"
// departure.
type Occurrence struct {
	VesselID   int64     `json:"embarcacion_id"`
	RouteID    int64     `json:"ruta_id"`
	TravelDate time.Time `json:"fecha_viaje"`
	TravelTime string    `json:"hora_viaje"`
}

type Route struct {
	ID            int64  `json:"id"`
	Name          string `json:"nombre"`
	Origin        string `json:"origen"`
	Destination   string `json:"destino"`
	PriceCentimos int64  `json:"precio_centimos"`
	Active        bool   `json:"activa"`
}

type Vessel struct {
	ID       int64       `json:"id"`
	Name     string      `json:"nombre"`
	Capacity int         `json:"capacidad"`
	Type     string      `json:"tipo"`
	State    VesselState `json:"estado"`
}

// VesselRoute assigns a vessel to a route with its departure times and
// operating days. At most one active assignment may exist per (vessel, route).
type VesselRoute struct {
	ID             int64    `json:"id"`
	VesselID       int64    `json:"embarcacion_id"`
	RouteID        int64    `json:"ruta_id"`
	DepartureTimes []string `json:"horas_salida"`
	OperatingDays  []string `json:"dias_operacion"`
	Active         bool     `json:"activo"`
}

type Port struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
	City string `json:"ciudad"`
}

type Customer struct {
	ID          int64  `json:"id"`
	DNI         string `json:"dni"`
	Name        string `json:"nombre"`
	Surname     string `json:"apellido"`
	Phone       string `json:"telefono"`
	Email       string `json:"email"`
	Nationality string `json:"nacionalidad"`
	Address     string `json:"direccion"`
}

type Sale struct {
	ID             uuid.UUID `json:"id"`
	Number         string    `json:"numero_venta"`
	CustomerID     int64     `json:"cliente_id"`
	RouteID        int64     `json:"ruta_id"`
	VesselID       int64     `json:"embarcacion_id"`
	SellerID       int64     `json:"vendedor_id"`
	TravelDate     time.Time `json:"fecha_viaje"`
	TravelTime     string    `json:"hora_viaje"`
	BoardingTime   string    `json:"hora_embarque"`
	BoardingPortID int64     `json:"puerto_embarque_id"`
	PassengerCount int       `json:"cantidad_pasajeros"`
	UnitPriceCent  int64     `json:"precio_unitario_centimos"`
	SubtotalCent   int64     `json:"subtotal_centimos"`
	TaxCent        int64     `json:"igv_centimos"`
	TotalCent      int64     `json:"total_centimos"`
	PaymentMethod  string    `json:"metodo_pago"`
	State          SaleState `json:"estado"`
	Notes          string    `json:"observaciones"`
	CreatedAt      time.Time `json:"creado_en"`
}

// Occurrence returns the trip tuple this sale counts against.
func (s Sale) Occurrence() Occurrence {
	return Occurrence{
		VesselID:   s.VesselID,
		RouteID:    s.RouteID,
		TravelDate: s.TravelDate,
		TravelTime: s.TravelTime,
	}
}

// Cancellation is the anulación/reembolso record, 1:1 with a sale and
// immutable once written.
type Cancellation struct {
	ID            uuid.UUID        `json:"id"`
	SaleID        uuid.UUID        `json:"venta_id"`
	Reason        string           `json:"motivo"`
	Notes         string           `json:"observaciones"`
	ActingUserID  int64            `json:"usuario_id"`
	SeatsReleased int              `json:"asientos_liberados"`
	RefundCent    int64            `json:"monto_reembolso_centimos"`
	Type          CancellationType `json:"tipo_anulacion"`
	CreatedAt     time.Time        `json:"creado_en"`
}

// BoardingControl is the per-sale, per-occurrence boarding record.
// RegisteredAt stays nil until the first state change.
type BoardingControl struct {
	ID           uuid.UUID     `json:"id"`
	SaleID       uuid.UUID     `json:"venta_id"`
	OperatorID   *int64        `json:"operador_id,omitempty"`
	VesselID     int64         `json:"embarcacion_id"`
	RouteID      int64         `json:"ruta_id"`
	TravelDate   time.Time     `json:"fecha_viaje"`
	TravelTime   string        `json:"hora_viaje"`
	State        BoardingState `json:"estado_embarque"`
	RegisteredAt *time.Time    `json:"registrado_en,omitempty"`
	Notes        string        `json:"observaciones"`
	RecordType   string        `json:"tipo_registro"`
}

// PassengerView is what the boarding screen shows: the boarding record joined
// with its sale and customer.
type PassengerView struct {
	Control        BoardingControl `json:"control"`
	SaleNumber     string          `json:"numero_venta"`
	PassengerCount int             `json:"cantidad_pasajeros"`
	CustomerDNI    string          `json:"dni"`
	CustomerName   string          `json:"nombre_completo"`
}

// OccurrenceStats aggregates boarding progress for one trip.
type OccurrenceStats struct {
	Total             int `json:"total"`
	Boarded           int `json:"embarcados"`
	Pending           int `json:"pendientes"`
	NotBoarded        int `json:"no_embarcados"`
	BoardedPct        int `json:"porcentaje_embarque"`
	RemainingCapacity int `json:"capacidad_restante"`
}

type User struct {
	ID           int64         `json:"id"`
	Username     string        `json:"usuario"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"rol"`
	Active       bool          `json:"activo"`
	VesselID     *int64        `json:"embarcacion_id,omitempty"`
	OperatorStat OperatorState `json:"estado_operador,omitempty"`
	AssignedAt   *time.Time    `json:"asignado_en,omitempty"`
}

// Availability is the result of a capacity check for one occurrence.
type Availability struct {
	Available bool `json:"disponible"`
	Remaining int  `json:"asientos_disponibles"`
	Capacity  int  `json:"capacidad"`
}

// SaleWithCustomer is the sale detail view returned to sellers.
type SaleWithCustomer struct {
	Sale     Sale     `json:"venta"`
	Customer Customer `json:"cliente"`
}

// CancelResult is what a successful cancellation returns.
type CancelResult struct {
	Cancellation  Cancellation `json:"anulacion"`
	UpdatedSale   Sale         `json:"venta"`
	SeatsReleased int          `json:"asientos_liberados"`
}
