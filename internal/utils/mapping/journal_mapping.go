package mapping

import (
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	"github.com/api-diengcyber/transaksi-sub000/internal/models"
)

// ToModelJournal converts a domain Journal header to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:  d.JournalID,
		Code:       d.Code,
		CreatedAt:  d.CreatedAt,
		CreatedBy:  d.CreatedBy,
		VerifiedBy: NullString(d.VerifiedBy),
		VerifiedAt: NullTime(d.VerifiedAt),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal without details.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:  m.JournalID,
		Code:       m.Code,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
		VerifiedBy: m.VerifiedBy.String,
		VerifiedAt: TimePtr(m.VerifiedAt),
	}
}

// ToModelJournalDetail converts a domain detail; lineNo keeps payload order.
func ToModelJournalDetail(d domain.JournalDetail, lineNo int) models.JournalDetail {
	return models.JournalDetail{
		DetailID:    d.DetailID,
		JournalCode: d.JournalCode,
		LineNo:      lineNo,
		Key:         d.Key,
		Value:       d.Value,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainJournalDetail converts a model JournalDetail to a domain JournalDetail
func ToDomainJournalDetail(m models.JournalDetail) domain.JournalDetail {
	return domain.JournalDetail{
		DetailID:    m.DetailID,
		JournalCode: m.JournalCode,
		Key:         m.Key,
		Value:       m.Value,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
