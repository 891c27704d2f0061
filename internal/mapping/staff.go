package mapping

import (
	"log/slog"
	"strconv"

	"kinosync/internal/logging"
	"kinosync/internal/media"
	"kinosync/internal/services/kinopoisk"
)

// roleByProfession is the closed translation table from the catalog's
// free-text profession key to supported credit roles. Keys absent here
// are explicitly unmapped, not an error.
var roleByProfession = map[string]media.Role{
	"ACTOR":    media.RoleActor,
	"DIRECTOR": media.RoleDirector,
	"WRITER":   media.RoleWriter,
	"PRODUCER": media.RoleProducer,
	"COMPOSER": media.RoleComposer,
}

// CreditsFromStaff maps staff entries to credits. Entries with a blank
// name or an unmapped profession key are skipped with a warning.
func CreditsFromStaff(staff []kinopoisk.FilmStaff, logger *slog.Logger) []media.Credit {
	if logger == nil {
		logger = logging.NewNop()
	}
	credits := make([]media.Credit, 0, len(staff))
	for _, entry := range staff {
		name := entry.NameRu
		if name == "" {
			name = entry.NameEn
		}
		if name == "" {
			logger.Warn("skipping nameless staff entry", logging.Int64("staff_id", entry.StaffID))
			continue
		}
		role, ok := roleByProfession[entry.ProfessionKey]
		if !ok {
			logger.Warn("skipping staff entry with unmapped profession",
				logging.String("name", name), logging.String("profession", entry.ProfessionKey))
			continue
		}
		ids := media.ProviderIDs{}
		ids.Set(media.ProviderKinopoisk, strconv.FormatInt(entry.StaffID, 10))
		credits = append(credits, media.Credit{
			Name:        name,
			Role:        role,
			Character:   entry.Description,
			ImageURL:    entry.PosterURL,
			ProviderIDs: ids,
		})
	}
	return credits
}
