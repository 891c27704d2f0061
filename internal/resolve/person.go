package resolve

import (
	"context"

	"kinosync/internal/logging"
	"kinosync/internal/mapping"
	"kinosync/internal/match"
	"kinosync/internal/media"
)

// Person resolves a person lookup into full person metadata. The name
// path requires the relevance filter to leave exactly one candidate,
// which is then re-fetched for the full record.
func (s *Service) Person(ctx context.Context, lookup Lookup) (Result[media.Person], error) {
	if id, ok := catalogID(lookup.ProviderIDs); ok {
		person, err := s.api.PersonByID(ctx, id)
		if err != nil {
			return Result[media.Person]{}, absorbNoToken(err)
		}
		if person != nil {
			return resolved(mapping.PersonFromRecord(*person)), nil
		}
		s.logger.Debug("bound catalog id yielded no person", logging.Int64("id", id))
	}
	query := match.Normalize(lookup.Name)
	if query == "" {
		return Result[media.Person]{}, nil
	}

	found, err := s.api.PersonsByName(ctx, query)
	if err != nil {
		return Result[media.Person]{}, absorbNoToken(err)
	}
	relevant := match.FilterRelevantPersons(found.Items, lookup.Name)
	if len(relevant) != 1 {
		s.logger.Info("person search was not conclusive",
			logging.String("name", lookup.Name),
			logging.Int("candidates", len(relevant)))
		return Result[media.Person]{}, nil
	}
	person, err := s.api.PersonByID(ctx, relevant[0].PersonID)
	if err != nil || person == nil {
		return Result[media.Person]{}, absorbNoToken(err)
	}
	return resolved(mapping.PersonFromRecord(*person)), nil
}
