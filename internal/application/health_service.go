package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
)

type VaccinationService struct {
	api ports.APIClient
}

func NewVaccinationService(api ports.APIClient) *VaccinationService {
	return &VaccinationService{api: api}
}

func (s *VaccinationService) List(ctx context.Context, petID string) ([]domain.Vaccination, error) {
	escaped, err := requireID("pet", petID)
	if err != nil {
		return nil, err
	}

	var vaccinations []domain.Vaccination
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resourcePath("pets", escaped, "vaccinations")}, &vaccinations); err != nil {
		return nil, fmt.Errorf("list vaccinations for pet %s: %w", petID, err)
	}
	return vaccinations, nil
}

func (s *VaccinationService) Create(ctx context.Context, petID string, input domain.VaccinationInput) (domain.Vaccination, error) {
	escaped, err := requireID("pet", petID)
	if err != nil {
		return domain.Vaccination{}, err
	}
	if strings.TrimSpace(input.Vaccine) == "" {
		return domain.Vaccination{}, errors.New("vaccine is required")
	}

	var vaccination domain.Vaccination
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: resourcePath("pets", escaped, "vaccinations"), Body: input}, &vaccination); err != nil {
		return domain.Vaccination{}, fmt.Errorf("add vaccination for pet %s: %w", petID, err)
	}
	return vaccination, nil
}

func (s *VaccinationService) Update(ctx context.Context, id string, input domain.VaccinationInput) (domain.Vaccination, error) {
	escaped, err := requireID("vaccination", id)
	if err != nil {
		return domain.Vaccination{}, err
	}

	var vaccination domain.Vaccination
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPut, Path: resourcePath("vaccinations", escaped), Body: input}, &vaccination); err != nil {
		return domain.Vaccination{}, fmt.Errorf("update vaccination %s: %w", id, err)
	}
	return vaccination, nil
}

func (s *VaccinationService) Delete(ctx context.Context, id string) error {
	escaped, err := requireID("vaccination", id)
	if err != nil {
		return err
	}

	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodDelete, Path: resourcePath("vaccinations", escaped)}, nil); err != nil {
		return fmt.Errorf("delete vaccination %s: %w", id, err)
	}
	return nil
}

func (s *VaccinationService) UploadCertificate(ctx context.Context, id string, upload Upload) (domain.Vaccination, error) {
	escaped, err := requireID("vaccination", id)
	if err != nil {
		return domain.Vaccination{}, err
	}
	form, err := upload.form("certificate")
	if err != nil {
		return domain.Vaccination{}, err
	}

	var vaccination domain.Vaccination
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: resourcePath("vaccinations", escaped, "certificate"), Form: form}, &vaccination); err != nil {
		return domain.Vaccination{}, fmt.Errorf("upload certificate for vaccination %s: %w", id, err)
	}
	return vaccination, nil
}

type MedicalRecordService struct {
	api ports.APIClient
}

func NewMedicalRecordService(api ports.APIClient) *MedicalRecordService {
	return &MedicalRecordService{api: api}
}

func (s *MedicalRecordService) List(ctx context.Context, petID string) ([]domain.MedicalRecord, error) {
	escaped, err := requireID("pet", petID)
	if err != nil {
		return nil, err
	}

	var records []domain.MedicalRecord
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resourcePath("pets", escaped, "medical-records")}, &records); err != nil {
		return nil, fmt.Errorf("list medical records for pet %s: %w", petID, err)
	}
	return records, nil
}

func (s *MedicalRecordService) Get(ctx context.Context, id string) (domain.MedicalRecord, error) {
	escaped, err := requireID("medical record", id)
	if err != nil {
		return domain.MedicalRecord{}, err
	}

	var record domain.MedicalRecord
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resourcePath("medical-records", escaped)}, &record); err != nil {
		return domain.MedicalRecord{}, fmt.Errorf("get medical record %s: %w", id, err)
	}
	return record, nil
}

func (s *MedicalRecordService) Create(ctx context.Context, petID string, input domain.MedicalRecordInput) (domain.MedicalRecord, error) {
	escaped, err := requireID("pet", petID)
	if err != nil {
		return domain.MedicalRecord{}, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return domain.MedicalRecord{}, errors.New("title is required")
	}

	var record domain.MedicalRecord
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: resourcePath("pets", escaped, "medical-records"), Body: input}, &record); err != nil {
		return domain.MedicalRecord{}, fmt.Errorf("add medical record for pet %s: %w", petID, err)
	}
	return record, nil
}

func (s *MedicalRecordService) Attach(ctx context.Context, id string, upload Upload) (domain.Attachment, error) {
	escaped, err := requireID("medical record", id)
	if err != nil {
		return domain.Attachment{}, err
	}
	form, err := upload.form("file")
	if err != nil {
		return domain.Attachment{}, err
	}

	var attachment domain.Attachment
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: resourcePath("medical-records", escaped, "attachments"), Form: form}, &attachment); err != nil {
		return domain.Attachment{}, fmt.Errorf("attach file to medical record %s: %w", id, err)
	}
	return attachment, nil
}
