package mapping

import (
	"github.com/SscSPs/familienkasse/internal/core/domain"
	"github.com/SscSPs/familienkasse/internal/models"
)

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   optionalString(d.PasswordHash),
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: optionalString(d.ProviderUserID),
		EmailVerified:  d.EmailVerified,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   derefString(m.PasswordHash),
		AuthProvider:   domain.AuthProvider(m.AuthProvider),
		ProviderUserID: derefString(m.ProviderUserID),
		EmailVerified:  m.EmailVerified,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainUserSlice converts a slice of model Users to domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
