package dto

import (
	"time"

	"aquaorders/internal/domain"
)

type TransitionRequest struct {
	StatusID  string `json:"statusId"`
	ChangedBy string `json:"changedBy"`
	Reason    string `json:"reason,omitempty"`
}

type StatusDefinitionDTO struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	DisplayRank    int    `json:"displayRank"`
	ReasonRequired bool   `json:"reasonRequired"`
}

func NewStatusDefinitionDTO(def domain.StatusDefinition) StatusDefinitionDTO {
	return StatusDefinitionDTO{
		ID:             def.ID,
		Description:    def.Description,
		DisplayRank:    def.DisplayRank,
		ReasonRequired: def.ReasonRequired,
	}
}

type HistoryEntryDTO struct {
	Status       string    `json:"status"`
	ChangedBy    string    `json:"changedBy"`
	Timestamp    time.Time `json:"timestamp"`
	Reason       *string   `json:"reason,omitempty"`
	RevertedFrom *string   `json:"revertedFrom,omitempty"`
}

func NewHistoryEntryDTO(entry domain.StatusHistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		Status:       entry.Status,
		ChangedBy:    entry.ChangedBy,
		Timestamp:    entry.Timestamp,
		Reason:       entry.Reason,
		RevertedFrom: entry.RevertedFrom,
	}
}
