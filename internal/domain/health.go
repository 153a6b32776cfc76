package domain

import "time"

type Vaccination struct {
	ID             string     `json:"id"`
	PetID          string     `json:"petId"`
	Vaccine        string     `json:"vaccine"`
	Dose           string     `json:"dose,omitempty"`
	AppliedAt      time.Time  `json:"appliedAt"`
	NextDoseAt     *time.Time `json:"nextDoseAt,omitempty"`
	Veterinarian   string     `json:"veterinarian,omitempty"`
	Batch          string     `json:"batch,omitempty"`
	CertificateURL string     `json:"certificateUrl,omitempty"`
}

type VaccinationInput struct {
	Vaccine      string     `json:"vaccine"`
	Dose         string     `json:"dose,omitempty"`
	AppliedAt    time.Time  `json:"appliedAt"`
	NextDoseAt   *time.Time `json:"nextDoseAt,omitempty"`
	Veterinarian string     `json:"veterinarian,omitempty"`
	Batch        string     `json:"batch,omitempty"`
}

type MedicalRecord struct {
	ID           string       `json:"id"`
	PetID        string       `json:"petId"`
	Kind         string       `json:"type"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Veterinarian string       `json:"veterinarian,omitempty"`
	RecordedAt   time.Time    `json:"date"`
	Attachments  []Attachment `json:"attachments,omitempty"`
}

type MedicalRecordInput struct {
	Kind         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Veterinarian string    `json:"veterinarian,omitempty"`
	RecordedAt   time.Time `json:"date"`
}

type Attachment struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}
