package directory

import (
	"context"

	"github.com/gescom/backend/internal/domain/directory"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransportService handles transport company directory operations
type TransportService struct {
	transportRepo directory.TransportRepository
}

// NewTransportService creates a new TransportService
func NewTransportService(transportRepo directory.TransportRepository) *TransportService {
	return &TransportService{transportRepo: transportRepo}
}

// Create registers a new transport company. Codes are unique across the directory.
func (s *TransportService) Create(ctx context.Context, req CreateTransportRequest) (*TransportResponse, error) {
	exists, err := s.transportRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A transport company with this code already exists")
	}

	transport, err := directory.NewTransport(req.Code, req.Name, req.RUC)
	if err != nil {
		return nil, err
	}
	if userID, ok := shared.UserIDFromContext(ctx); ok {
		transport.SetCreatedBy(userID)
	}

	if req.ContactName != "" || req.Phone != "" {
		if err := transport.SetContact(req.ContactName, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Coverage != "" {
		transport.SetCoverage(req.Coverage)
	}
	if req.Notes != "" {
		transport.SetNotes(req.Notes)
	}

	if err := s.transportRepo.Save(ctx, transport); err != nil {
		return nil, err
	}

	response := ToTransportResponse(transport)
	return &response, nil
}

// GetByID retrieves a transport company by ID
func (s *TransportService) GetByID(ctx context.Context, id uuid.UUID) (*TransportResponse, error) {
	transport, err := s.transportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransportResponse(transport)
	return &response, nil
}

// GetByCode retrieves a transport company by directory code
func (s *TransportService) GetByCode(ctx context.Context, code string) (*TransportResponse, error) {
	transport, err := s.transportRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToTransportResponse(transport)
	return &response, nil
}

// List retrieves transport companies with filtering and pagination
func (s *TransportService) List(ctx context.Context, filter PartyListFilter) ([]TransportResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	transports, err := s.transportRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transportRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTransportResponses(transports), total, nil
}

// Update applies a sparse update to a transport company
func (s *TransportService) Update(ctx context.Context, id uuid.UUID, req UpdateTransportRequest) (*TransportResponse, error) {
	transport, err := s.transportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.RUC != nil {
		name := transport.Name
		ruc := transport.RUC
		if req.Name != nil {
			name = *req.Name
		}
		if req.RUC != nil {
			ruc = *req.RUC
		}
		if err := transport.Update(name, ruc); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil {
		contactName := transport.ContactName
		phone := transport.Phone
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := transport.SetContact(contactName, phone); err != nil {
			return nil, err
		}
	}

	if req.Coverage != nil {
		transport.SetCoverage(*req.Coverage)
	}
	if req.Notes != nil {
		transport.SetNotes(*req.Notes)
	}

	if err := s.transportRepo.Save(ctx, transport); err != nil {
		return nil, err
	}

	response := ToTransportResponse(transport)
	return &response, nil
}

// Activate reactivates a deactivated transport company
func (s *TransportService) Activate(ctx context.Context, id uuid.UUID) (*TransportResponse, error) {
	transport, err := s.transportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := transport.Activate(); err != nil {
		return nil, err
	}

	if err := s.transportRepo.Save(ctx, transport); err != nil {
		return nil, err
	}

	response := ToTransportResponse(transport)
	return &response, nil
}

// Deactivate deactivates a transport company without removing history
func (s *TransportService) Deactivate(ctx context.Context, id uuid.UUID) (*TransportResponse, error) {
	transport, err := s.transportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := transport.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.transportRepo.Save(ctx, transport); err != nil {
		return nil, err
	}

	response := ToTransportResponse(transport)
	return &response, nil
}

// Delete removes a transport company from the directory
func (s *TransportService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.transportRepo.Delete(ctx, id)
}
