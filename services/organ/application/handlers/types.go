package handlers

import (
	"net/http"

	"github.com/ghuser/organcare/pkg/httpx"
	pkgvalidator "github.com/ghuser/organcare/pkg/validator"
	appsvcs "github.com/ghuser/organcare/services/organ/application/services"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"organ not found"`
} // @name ErrorResponse

// OrganRequest is the request body for POST /organs and PUT /organs/{id}.
type OrganRequest struct {
	LocationID      string `json:"location_id"      validate:"required,notblank"                                        example:"lag-centro"`
	ChurchLocation  string `json:"church_location"  validate:"required,oneof=church_hall music_room children_area other" example:"church_hall"`
	Model           string `json:"model"            validate:"required,notblank,max=255"                                example:"Yamaha PSR-E373"`
	SerialNumber    string `json:"serial_number"    validate:"max=255"                                                  example:"BCRK01234"`
	PatrimonyNumber string `json:"patrimony_number" validate:"max=255"                                                  example:"PAT-0042"`
} // @name OrganRequest

func (r *OrganRequest) input() appsvcs.OrganInput {
	return appsvcs.OrganInput{
		LocationID:      r.LocationID,
		ChurchLocation:  models.ChurchPosition(r.ChurchLocation),
		Model:           r.Model,
		SerialNumber:    r.SerialNumber,
		PatrimonyNumber: r.PatrimonyNumber,
	}
}

// PartExchangeRequest describes a replaced part.
type PartExchangeRequest struct {
	Description string `json:"description" validate:"required,notblank,max=1000" example:"Tecla C4"`
	Reason      string `json:"reason"      validate:"max=1000"                   example:"Tecla quebrada"`
	Observation string `json:"observation" validate:"max=1000"`
} // @name PartExchangeRequest

// MaintenanceFields are the editable fields of a maintenance event. Date
// accepts YYYY-MM-DD or RFC 3339.
type MaintenanceFields struct {
	Date                string               `json:"date"                  validate:"required,isodate"      example:"2025-05-10"`
	Technicians         []string             `json:"technicians"           validate:"max=2,dive,notblank"   example:"Ana,Carlos"`
	Occurrence          string               `json:"occurrence"            validate:"max=5000"              example:"Afinação geral"`
	HasPartExchange     bool                 `json:"has_part_exchange"`
	PartExchangeDetails *PartExchangeRequest `json:"part_exchange_details" validate:"omitempty"`
	Photos              []string             `json:"photos"                validate:"max=20"`
}

// CreateMaintenanceRequest is the request body for POST /maintenances.
type CreateMaintenanceRequest struct {
	OrganID string `json:"organ_id" validate:"required,notblank" example:"3f1c2a9e-8d4b-4a57-9e0f-0c1d2e3f4a5b"`
	MaintenanceFields
} // @name CreateMaintenanceRequest

// UpdateMaintenanceRequest is the request body for PUT /maintenances/{id}. An
// empty organ_id keeps the current organ.
type UpdateMaintenanceRequest struct {
	OrganID string `json:"organ_id" example:"3f1c2a9e-8d4b-4a57-9e0f-0c1d2e3f4a5b"`
	MaintenanceFields
} // @name UpdateMaintenanceRequest

func (f *MaintenanceFields) input(organID string) (appsvcs.MaintenanceInput, error) {
	date, err := pkgvalidator.ParseDate(f.Date)
	if err != nil {
		return appsvcs.MaintenanceInput{}, err
	}
	in := appsvcs.MaintenanceInput{
		OrganID:         organID,
		Date:            date,
		Technicians:     f.Technicians,
		Occurrence:      f.Occurrence,
		HasPartExchange: f.HasPartExchange,
		Photos:          f.Photos,
	}
	if f.PartExchangeDetails != nil {
		in.PartExchangeDetails = &models.PartExchange{
			Description: f.PartExchangeDetails.Description,
			Reason:      f.PartExchangeDetails.Reason,
			Observation: f.PartExchangeDetails.Observation,
		}
	}
	return in, nil
}

// writeFieldError writes a 422 in the same shape as validator failures.
func writeFieldError(w http.ResponseWriter, field string, err error) {
	httpx.ValidationError(w, map[string]string{field: err.Error()})
}
