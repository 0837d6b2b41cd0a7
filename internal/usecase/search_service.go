package usecase

import (
	"context"
	"sort"
	"strings"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/internal/domain/repository"
	"skyfare/pkg/logger"
	"skyfare/pkg/metrics"
	"skyfare/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Search defaults applied to zero fields
const (
	DefaultAdults     = 1
	DefaultMaxResults = 50
)

// SearchService runs flight searches and annotates the offers with the
// local favorite and watch state
type SearchService struct {
	remote    repository.FlightSearchRepository
	favorites *FlightStore
	alerts    *FlightStore
	validate  *validator.Validate
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewSearchService creates a new search service
func NewSearchService(
	remote repository.FlightSearchRepository,
	favorites *FlightStore,
	alerts *FlightStore,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *SearchService {
	return &SearchService{
		remote:    remote,
		favorites: favorites,
		alerts:    alerts,
		validate:  validator.New(),
		logger:    logger,
		metrics:   metrics,
	}
}

// Search validates the query, fetches the offers and returns them cheapest
// first. Offers with the same dedup key collapse to the cheapest of them.
func (s *SearchService) Search(ctx context.Context, req entity.SearchRequest) ([]entity.SearchResult, error) {
	req = withSearchDefaults(req)
	if err := s.validate.Struct(req); err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidRequest, err.Error())
	}
	if req.ReturnDate != "" {
		departure, _ := utils.ParseDate(req.DepartureDate)
		ret, _ := utils.ParseDate(req.ReturnDate)
		if ret.Before(departure) {
			return nil, errors.Wrap(domainerrors.ErrInvalidRequest, "return date is before departure date")
		}
	}

	s.logger.Info("Searching flights",
		"origin", req.OriginAirport,
		"destination", req.DestinationAirport,
		"departureDate", req.DepartureDate,
		"returnDate", req.ReturnDate)

	records, err := s.remote.Search(ctx, req)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("search").Inc()
		return nil, err
	}

	index := make(map[string]int, len(records))
	results := make([]entity.SearchResult, 0, len(records))
	for _, record := range records {
		key := record.Key()
		if i, seen := index[key]; seen {
			if record.TotalPrice < results[i].Record.TotalPrice {
				results[i].Record = record
			}
			continue
		}
		index[key] = len(results)

		results = append(results, entity.SearchResult{
			Record:     record,
			Key:        key,
			IsFavorite: s.favorites.ContainsKey(key),
			IsWatched:  s.alerts.ContainsKey(key),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Record.TotalPrice < results[j].Record.TotalPrice
	})

	s.logger.Info("Search completed", "offers", len(records), "results", len(results))
	return results, nil
}

func withSearchDefaults(req entity.SearchRequest) entity.SearchRequest {
	req.OriginAirport = strings.ToUpper(strings.TrimSpace(req.OriginAirport))
	req.DestinationAirport = strings.ToUpper(strings.TrimSpace(req.DestinationAirport))
	req.DepartureDate = strings.TrimSpace(req.DepartureDate)
	req.ReturnDate = strings.TrimSpace(req.ReturnDate)
	req.FareClass = entity.FareClass(strings.ToUpper(strings.TrimSpace(string(req.FareClass))))

	if req.Adults == 0 {
		req.Adults = DefaultAdults
	}
	if req.FareClass == "" {
		req.FareClass = entity.FareEconomy
	}
	if req.Max == 0 {
		req.Max = DefaultMaxResults
	}
	return req
}
