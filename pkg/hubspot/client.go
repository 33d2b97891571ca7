package hubspot

import (
	"context"
)

// Client is the main HubSpot client interface.
type Client interface {
	Deals() DealsClient
	Associations() AssociationsClient
	Engagements() EngagementsClient
	ContactLists() ContactListsClient
	DealProperties() PropertiesClient
	CompanyProperties() PropertiesClient
	Blogs() BlogsClient
	Topics() TopicsClient
	Forms() FormsClient
	Events() EventsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// DealsClient manages deals.
type DealsClient interface {
	Create(ctx context.Context, portalID int64, companyIDs, vids []int64, properties PropertyValues) (*Deal, error)
	Find(ctx context.Context, dealID int64) (*Deal, error)
	All(ctx context.Context, opts *DealListOptions) (*DealPage, error)
	Recent(ctx context.Context, opts *DealListOptions) ([]Deal, error)
	// Update reports false instead of failing when HubSpot rejects the call.
	Update(ctx context.Context, dealID int64, properties PropertyValues) (bool, error)
	UpdateStrict(ctx context.Context, dealID int64, properties PropertyValues) error
	Delete(ctx context.Context, dealID int64) error
	Associate(ctx context.Context, dealID int64, companyIDs, vids []int64) (bool, error)
	Dissociate(ctx context.Context, dealID int64, companyIDs, vids []int64) (bool, error)
	FindByAssociation(ctx context.Context, objectType ObjectType, objectID int64) ([]Deal, error)
}

// AssociationsClient manages CRM associations.
type AssociationsClient interface {
	BatchCreate(ctx context.Context, from, to ObjectType, pairs []AssociationPair) (bool, error)
	BatchDelete(ctx context.Context, from, to ObjectType, pairs []AssociationPair) (bool, error)
	All(ctx context.Context, from ObjectType, fromID int64, to ObjectType) ([]int64, error)
}

// EngagementsClient manages engagements.
type EngagementsClient interface {
	Create(ctx context.Context, engagement *Engagement) (*Engagement, error)
	CreateNote(ctx context.Context, note *NoteRequest) (*Engagement, error)
	CreateCall(ctx context.Context, call *CallRequest) (*Engagement, error)
	// Find returns nil without error when the engagement does not exist.
	Find(ctx context.Context, engagementID int64) (*Engagement, error)
	FindByAssociation(ctx context.Context, objectID int64, objectType string) ([]Engagement, error)
	All(ctx context.Context, limit int, offset int64) (*EngagementPage, error)
	Associate(ctx context.Context, engagementID int64, objectType string, objectID int64) error
	Update(ctx context.Context, engagementID int64, engagement *Engagement) (*Engagement, error)
	Delete(ctx context.Context, engagementID int64) error
}

// ContactListsClient manages contact lists.
type ContactListsClient interface {
	Create(ctx context.Context, request *ContactListRequest) (*ContactList, error)
	All(ctx context.Context, opts *ContactListOptions) (*ContactListPage, error)
	Find(ctx context.Context, listID int64) (*ContactList, error)
	FindBatch(ctx context.Context, listIDs []int64) ([]ContactList, error)
	Contacts(ctx context.Context, listID int64, opts *ContactPageOptions) (*ContactPage, error)
	Add(ctx context.Context, listID int64, vids []int64) (bool, error)
	Remove(ctx context.Context, listID int64, vids []int64) (bool, error)
	Update(ctx context.Context, listID int64, request *ContactListRequest) (*ContactList, error)
	Delete(ctx context.Context, listID int64) error
	Refresh(ctx context.Context, listID int64) (bool, error)
}

// PropertiesClient manages property definitions and groups of one object type.
type PropertiesClient interface {
	All(ctx context.Context, filter GroupFilter) ([]Property, error)
	Find(ctx context.Context, name string) (*Property, error)
	// Create returns nil without error when fields holds no writable attribute.
	Create(ctx context.Context, fields map[string]any) (*Property, error)
	Update(ctx context.Context, name string, fields map[string]any) (*Property, error)
	Delete(ctx context.Context, name string) error
	Groups(ctx context.Context, filter GroupFilter) ([]PropertyGroup, error)
	FindGroup(ctx context.Context, name string) (*PropertyGroup, error)
	CreateGroup(ctx context.Context, fields map[string]any) (*PropertyGroup, error)
	UpdateGroup(ctx context.Context, name string, fields map[string]any) (*PropertyGroup, error)
	DeleteGroup(ctx context.Context, name string) error
}

// BlogsClient reads blogs and blog posts.
type BlogsClient interface {
	List(ctx context.Context) ([]Blog, error)
	FindByID(ctx context.Context, blogID int64) (*Blog, error)
	Posts(ctx context.Context, blogID int64, opts *BlogPostOptions) ([]BlogPost, error)
	FindPost(ctx context.Context, postID int64) (*BlogPost, error)
	PostTopics(ctx context.Context, post *BlogPost) ([]Topic, error)
}

// TopicsClient reads blog topics.
type TopicsClient interface {
	List(ctx context.Context) ([]Topic, error)
	FindByID(ctx context.Context, topicID int64) (*Topic, error)
}

// FormsClient submits forms.
type FormsClient interface {
	// Submit reports false instead of failing when HubSpot rejects the submission.
	Submit(ctx context.Context, formGUID string, fields map[string]string) (bool, error)
}

// EventsClient records behavioral events.
type EventsClient interface {
	Track(ctx context.Context, eventID, email string, properties map[string]string) (bool, error)
	TrackCustom(ctx context.Context, event *CustomEvent) error
}
