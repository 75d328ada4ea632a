package httpgin

import "time"

type LoginRequest struct {
	Username string `json:"usuario" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CustomerInput struct {
	DNI         string `json:"dni" binding:"required"`
	Name        string `json:"nombre" binding:"required"`
	Surname     string `json:"apellido" binding:"required"`
	Phone       string `json:"telefono"`
	Email       string `json:"email"`
	Nationality string `json:"nacionalidad"`
	Address     string `json:"direccion"`
}

type CreateSaleRequest struct {
	Customer       CustomerInput `json:"cliente" binding:"required"`
	RouteID        int64         `json:"ruta_id" binding:"required"`
	VesselID       int64         `json:"embarcacion_id" binding:"required"`
	TravelDate     string        `json:"fecha_viaje" binding:"required"`
	TravelTime     string        `json:"hora_viaje" binding:"required"`
	BoardingTime   string        `json:"hora_embarque"`
	BoardingPortID int64         `json:"puerto_embarque_id" binding:"required"`
	PassengerCount int           `json:"cantidad_pasajeros" binding:"required,gt=0"`
	PaymentMethod  string        `json:"metodo_pago" binding:"required"`
	Notes          string        `json:"observaciones"`
}

type CancelSaleRequest struct {
	Type       string `json:"tipo_anulacion" binding:"required"`
	Reason     string `json:"motivo" binding:"required"`
	Notes      string `json:"observaciones"`
	RefundCent int64  `json:"monto_reembolso_centimos"`
}

type BoardingStateRequest struct {
	State string `json:"estado_embarque" binding:"required"`
	Notes string `json:"observaciones"`
}

type RouteRequest struct {
	Name          string `json:"nombre" binding:"required"`
	Origin        string `json:"origen" binding:"required"`
	Destination   string `json:"destino" binding:"required"`
	PriceCentimos int64  `json:"precio_centimos" binding:"required,gt=0"`
	Active        *bool  `json:"activa"`
}

type VesselRequest struct {
	Name     string `json:"nombre" binding:"required"`
	Capacity int    `json:"capacidad" binding:"required,gt=0"`
	Type     string `json:"tipo"`
	State    string `json:"estado"`
}

type ScheduleRequest struct {
	VesselID       int64    `json:"embarcacion_id" binding:"required"`
	RouteID        int64    `json:"ruta_id" binding:"required"`
	DepartureTimes []string `json:"horas_salida" binding:"required,min=1,dive,required"`
	OperatingDays  []string `json:"dias_operacion" binding:"required,min=1,dive,required"`
}

type AssignOperatorRequest struct {
	UserID   int64 `json:"usuario_id" binding:"required"`
	VesselID int64 `json:"embarcacion_id" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
