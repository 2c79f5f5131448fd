package directory

import (
	"context"

	"github.com/gescom/backend/internal/domain/directory"
	"github.com/gescom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client directory operations
type ClientService struct {
	clientRepo directory.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo directory.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create registers a new client. Codes are unique across the directory.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	exists, err := s.clientRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A client with this code already exists")
	}

	client, err := directory.NewClient(req.Code, req.Name, req.RUC)
	if err != nil {
		return nil, err
	}
	if userID, ok := shared.UserIDFromContext(ctx); ok {
		client.SetCreatedBy(userID)
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := client.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		addr, err := req.Address.ToValueObject()
		if err != nil {
			return nil, err
		}
		client.SetAddress(addr)
	}
	if req.Notes != "" {
		client.SetNotes(req.Notes)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// GetByCode retrieves a client by directory code
func (s *ClientService) GetByCode(ctx context.Context, code string) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter PartyListFilter) ([]ClientResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToClientResponses(clients), total, nil
}

// Update applies a sparse update to a client.
// Only fields present in the request are touched.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.RUC != nil {
		name := client.Name
		ruc := client.RUC
		if req.Name != nil {
			name = *req.Name
		}
		if req.RUC != nil {
			ruc = *req.RUC
		}
		if err := client.Update(name, ruc); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := client.ContactName
		phone := client.Phone
		email := client.Email
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := client.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}

	if req.Address != nil {
		addr, err := req.Address.ToValueObject()
		if err != nil {
			return nil, err
		}
		client.SetAddress(addr)
	}
	if req.Notes != nil {
		client.SetNotes(*req.Notes)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Activate reactivates a deactivated client
func (s *ClientService) Activate(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := client.Activate(); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Deactivate deactivates a client without removing history
func (s *ClientService) Deactivate(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := client.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client from the directory
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.clientRepo.Delete(ctx, id)
}

func toDomainFilter(filter PartyListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.RUC != "" {
		domainFilter.Filters["ruc"] = filter.RUC
	}

	return domainFilter
}
