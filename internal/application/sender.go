package application

import (
	"context"
	"sync"

	"github.com/mustang75/ukrposhta-international-shipping/internal/config"
	"github.com/mustang75/ukrposhta-international-shipping/internal/infrastructure/upstream"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
)

// SenderProfile is the resolved sender identity used for every shipment
type SenderProfile struct {
	UUID      string
	AddressID int64
	Name      string
	LatinName string
}

// SenderService resolves and caches the sender profile. The counterparty
// UUID from config is the sender's client UUID; the address ID is fetched
// from the eCom API (or created from the configured home address) once and
// reused.
type SenderService struct {
	ecom   EcomAPI
	cfg    config.Sender
	logger *logging.Logger

	mu       sync.Mutex
	resolved *SenderProfile
}

// NewSenderService creates a sender service
func NewSenderService(ecom EcomAPI, cfg config.Sender, logger *logging.Logger) *SenderService {
	return &SenderService{ecom: ecom, cfg: cfg, logger: logger.WithComponent("sender")}
}

// Resolve returns the sender profile, fetching missing pieces upstream on
// first use. A sender without a latinName is patched upstream, since the USA
// lane rejects shipments from senders without one.
func (s *SenderService) Resolve(ctx context.Context) (*SenderProfile, *errors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolved != nil {
		return s.resolved, nil
	}

	profile := &SenderProfile{
		UUID:      s.cfg.UUID,
		AddressID: s.cfg.AddressID,
		Name:      s.cfg.Name,
		LatinName: s.cfg.LatinName,
	}
	if profile.UUID == "" {
		profile.UUID = s.ecom.CounterpartyUUID()
	}

	if profile.AddressID != 0 {
		s.resolved = profile
		return profile, nil
	}

	existing, err := s.ecom.GetClient(ctx, profile.UUID)
	if err == nil {
		profile.AddressID = existing.AddressID

		if existing.LatinName == "" && profile.LatinName != "" {
			s.logger.Info("Updating sender latin name", "uuid", profile.UUID)
			_, updateErr := s.ecom.UpdateClient(ctx, profile.UUID, &upstream.ClientRequest{
				LatinName: profile.LatinName,
				AddressID: profile.AddressID,
			})
			if updateErr != nil {
				s.logger.WithError(updateErr).Warn("Could not update sender latin name")
			}
		}

		s.resolved = profile
		return profile, nil
	}

	// The clients endpoint may refuse reads for the counterparty itself.
	// Fall back to creating the home address from config.
	s.logger.WithError(err).Warn("Could not fetch sender client, creating home address")

	addr, addrErr := s.ecom.CreateAddress(ctx, &upstream.AddressRequest{
		Postcode:    s.cfg.Postcode,
		Country:     s.cfg.Country,
		Region:      s.cfg.Region,
		City:        s.cfg.City,
		Street:      s.cfg.Street,
		HouseNumber: s.cfg.HouseNumber,
	})
	if addrErr != nil {
		return nil, mapUpstreamError(addrErr, "ukrposhta eCom API")
	}

	profile.AddressID = addr.ID
	s.resolved = profile
	return profile, nil
}
