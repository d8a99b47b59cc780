package builder

import (
	"time"

	"civicdesk/internal/domain/request"

	"github.com/google/uuid"
)

// ServiceRequestBuilder assembles valid service requests for tests, with
// mutation hooks for the invalid cases.
type ServiceRequestBuilder struct {
	category    string
	title       string
	description string
	location    string
	priority    string
	requesterID uuid.UUID
	now         time.Time
}

func NewServiceRequestBuilder() *ServiceRequestBuilder {
	return &ServiceRequestBuilder{
		category:    "pothole",
		title:       "Pothole on Main Street",
		description: "Deep pothole near the crosswalk at Main and 3rd.",
		location:    "Main St & 3rd Ave",
		priority:    "normal",
		requesterID: uuid.New(),
		now:         time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ServiceRequestBuilder) With(mutate func(*ServiceRequestBuilder)) *ServiceRequestBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *ServiceRequestBuilder) WithCategory(category string) *ServiceRequestBuilder {
	b.category = category
	return b
}

func (b *ServiceRequestBuilder) WithTitle(title string) *ServiceRequestBuilder {
	b.title = title
	return b
}

func (b *ServiceRequestBuilder) WithDescription(description string) *ServiceRequestBuilder {
	b.description = description
	return b
}

func (b *ServiceRequestBuilder) WithLocation(location string) *ServiceRequestBuilder {
	b.location = location
	return b
}

func (b *ServiceRequestBuilder) WithPriority(priority string) *ServiceRequestBuilder {
	b.priority = priority
	return b
}

func (b *ServiceRequestBuilder) WithRequesterID(id uuid.UUID) *ServiceRequestBuilder {
	b.requesterID = id
	return b
}

func (b *ServiceRequestBuilder) WithNow(now time.Time) *ServiceRequestBuilder {
	b.now = now
	return b
}

func (b *ServiceRequestBuilder) BuildDomain() (*request.ServiceRequest, error) {
	category, err := request.NewCategory(b.category)
	if err != nil {
		return nil, err
	}
	title, err := request.NewTitle(b.title)
	if err != nil {
		return nil, err
	}
	description, err := request.NewDescription(b.description)
	if err != nil {
		return nil, err
	}
	location, err := request.NewLocation(b.location)
	if err != nil {
		return nil, err
	}

	return request.NewServiceRequest(
		category,
		title,
		description,
		location,
		request.Priority(b.priority),
		b.requesterID,
		b.now,
	)
}

// BuildRecord returns the persisted shape with a given status, for
// seeding fakes at an arbitrary point in the lifecycle.
func (b *ServiceRequestBuilder) BuildRecord(status request.Status) request.Record {
	return request.Record{
		ID:          uuid.New(),
		Status:      status,
		Category:    b.category,
		Title:       b.title,
		Description: b.description,
		Location:    b.location,
		Priority:    request.Priority(b.priority),
		RequesterID: b.requesterID,
		CreatedAt:   b.now,
		UpdatedAt:   b.now,
	}
}
