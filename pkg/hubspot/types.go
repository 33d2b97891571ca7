package hubspot

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// PropertyValues maps property names to their current value. HubSpot v1
// payloads wrap each value as {"name": {"value": "..."}}; both that shape
// and a flat {"name": "..."} object decode into PropertyValues.
type PropertyValues map[string]string

// UnmarshalJSON implements json.Unmarshaler.
func (p *PropertyValues) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("parsing properties: %w", err)
	}

	out := make(PropertyValues, len(raw))

	for name, value := range raw {
		var wrapped struct {
			Value any `json:"value"`
		}

		if json.Unmarshal(value, &wrapped) == nil && wrapped.Value != nil {
			out[name] = scalarString(wrapped.Value)

			continue
		}

		var flat any
		if json.Unmarshal(value, &flat) == nil {
			if _, isObject := flat.(map[string]any); !isObject {
				out[name] = scalarString(flat)
			}
		}
	}

	*p = out

	return nil
}

// PropertyList converts values into the [{"name": k, "value": v}] list that
// write endpoints expect. keyName is "name" for deals and "property" for
// contacts. Entries are sorted by name.
func (p PropertyValues) PropertyList(keyName string) []map[string]string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}

	sort.Strings(names)

	list := make([]map[string]string, 0, len(names))
	for _, name := range names {
		list = append(list, map[string]string{keyName: name, "value": p[name]})
	}

	return list
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// Deal is a HubSpot deal.
type Deal struct {
	PortalID   int64          `json:"portalId"   yaml:"portalId"`
	DealID     int64          `json:"dealId"     yaml:"dealId"`
	IsDeleted  bool           `json:"isDeleted"  yaml:"isDeleted"`
	CompanyIDs []int64        `json:"companyIds" yaml:"companyIds"`
	Vids       []int64        `json:"vids"       yaml:"vids"`
	Properties PropertyValues `json:"properties" yaml:"properties"`
}

// UnmarshalJSON flattens the associations object of the deals API.
func (d *Deal) UnmarshalJSON(data []byte) error {
	var payload struct {
		PortalID     int64          `json:"portalId"`
		DealID       int64          `json:"dealId"`
		IsDeleted    bool           `json:"isDeleted"`
		Associations DealAssociated `json:"associations"`
		Properties   PropertyValues `json:"properties"`
	}

	err := json.Unmarshal(data, &payload)
	if err != nil {
		return fmt.Errorf("parsing deal: %w", err)
	}

	*d = Deal{
		PortalID:   payload.PortalID,
		DealID:     payload.DealID,
		IsDeleted:  payload.IsDeleted,
		CompanyIDs: payload.Associations.AssociatedCompanyIDs,
		Vids:       payload.Associations.AssociatedVids,
		Properties: payload.Properties,
	}

	return nil
}

// Property returns a property value, or "" when unset.
func (d *Deal) Property(name string) string {
	return d.Properties[name]
}

// DealAssociated is the associations object of a deal payload.
type DealAssociated struct {
	AssociatedCompanyIDs []int64 `json:"associatedCompanyIds" yaml:"associatedCompanyIds"`
	AssociatedVids       []int64 `json:"associatedVids"       yaml:"associatedVids"`
}

// DealCreateRequest is the body of a deal creation.
type DealCreateRequest struct {
	PortalID     int64               `json:"portalId"`
	Associations DealAssociated      `json:"associations"`
	Properties   []map[string]string `json:"properties"`
}

// DealPage is one page of deals.
type DealPage struct {
	Deals   []Deal `json:"deals"   yaml:"deals"`
	Offset  int64  `json:"offset"  yaml:"offset"`
	HasMore bool   `json:"hasMore" yaml:"hasMore"`
}

// DealListOptions filters deal listings.
type DealListOptions struct {
	Limit      int
	Offset     int64
	Properties []string
	Since      time.Time
}

// ObjectType is a CRM object type used by associations.
type ObjectType string

// CRM object types.
const (
	ObjectContact ObjectType = "Contact"
	ObjectCompany ObjectType = "Company"
	ObjectDeal    ObjectType = "Deal"
)

// Association links two CRM objects.
type Association struct {
	FromObjectID int64  `json:"fromObjectId" yaml:"fromObjectId"`
	ToObjectID   int64  `json:"toObjectId"   yaml:"toObjectId"`
	Category     string `json:"category"     yaml:"category"`
	DefinitionID int    `json:"definitionId" yaml:"definitionId"`
}

// AssociationPair is a from/to id pair used by batch association calls.
type AssociationPair struct {
	FromID int64
	ToID   int64
}

// AssociationPage is one page of associated object ids.
type AssociationPage struct {
	Results []int64 `json:"results" yaml:"results"`
	HasMore bool    `json:"hasMore" yaml:"hasMore"`
	Offset  int64   `json:"offset"  yaml:"offset"`
}

// EngagementInfo is the engagement object of an engagement payload.
type EngagementInfo struct {
	ID        int64  `json:"id,omitempty"        yaml:"id,omitempty"`
	PortalID  int64  `json:"portalId,omitempty"  yaml:"portalId,omitempty"`
	Active    bool   `json:"active,omitempty"    yaml:"active,omitempty"`
	Type      string `json:"type,omitempty"      yaml:"type,omitempty"`
	OwnerID   int64  `json:"ownerId,omitempty"   yaml:"ownerId,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// EngagementAssociations lists the objects an engagement belongs to.
type EngagementAssociations struct {
	ContactIDs []int64 `json:"contactIds,omitempty" yaml:"contactIds,omitempty"`
	CompanyIDs []int64 `json:"companyIds,omitempty" yaml:"companyIds,omitempty"`
	DealIDs    []int64 `json:"dealIds,omitempty"    yaml:"dealIds,omitempty"`
	OwnerIDs   []int64 `json:"ownerIds,omitempty"   yaml:"ownerIds,omitempty"`
	TicketIDs  []int64 `json:"ticketIds,omitempty"  yaml:"ticketIds,omitempty"`
}

// Engagement is a note, call, email, meeting or task.
type Engagement struct {
	Engagement   EngagementInfo         `json:"engagement"            yaml:"engagement"`
	Associations EngagementAssociations `json:"associations"          yaml:"associations"`
	Attachments  []map[string]any       `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	Metadata     map[string]any         `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
}

// ID returns the engagement id.
func (e *Engagement) ID() int64 {
	return e.Engagement.ID
}

// Body returns the note or call body.
func (e *Engagement) Body() string {
	body, _ := e.Metadata["body"].(string)

	return body
}

// EngagementPage is one page of engagements.
type EngagementPage struct {
	Results []Engagement `json:"results" yaml:"results"`
	HasMore bool         `json:"hasMore" yaml:"hasMore"`
	Offset  int64        `json:"offset"  yaml:"offset"`
}

// NoteRequest describes a note engagement.
type NoteRequest struct {
	ContactID int64
	Body      string
	OwnerID   int64
	DealID    int64
}

// CallRequest describes a call engagement.
type CallRequest struct {
	ContactID int64
	Body      string
	Duration  time.Duration
	OwnerID   int64
	DealID    int64
	Status    string
	Time      time.Time
}

// ContactListFilter is one filter of a dynamic list.
type ContactListFilter struct {
	Operator string `json:"operator"           yaml:"operator"`
	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	Type     string `json:"type,omitempty"     yaml:"type,omitempty"`
	Value    any    `json:"value,omitempty"    yaml:"value,omitempty"`
}

// ContactList is a static or dynamic contact list.
type ContactList struct {
	ListID   int64                 `json:"listId"             yaml:"listId"`
	PortalID int64                 `json:"portalId"           yaml:"portalId"`
	Name     string                `json:"name"               yaml:"name"`
	Dynamic  bool                  `json:"dynamic"            yaml:"dynamic"`
	Deleted  bool                  `json:"deleted,omitempty"  yaml:"deleted,omitempty"`
	Filters  [][]ContactListFilter `json:"filters,omitempty"  yaml:"filters,omitempty"`
	MetaData map[string]any        `json:"metaData,omitempty" yaml:"metaData,omitempty"`
}

// ContactListRequest creates or updates a list.
type ContactListRequest struct {
	Name    string                `json:"name,omitempty"`
	Dynamic bool                  `json:"dynamic"`
	Filters [][]ContactListFilter `json:"filters,omitempty"`
}

// ContactListPage is one page of lists.
type ContactListPage struct {
	Lists   []ContactList `json:"lists"    yaml:"lists"`
	Offset  int64         `json:"offset"   yaml:"offset"`
	HasMore bool          `json:"has-more" yaml:"has-more"`
}

// ContactListKind selects static or dynamic lists.
type ContactListKind string

// List kinds.
const (
	ListsAll     ContactListKind = ""
	ListsStatic  ContactListKind = "static"
	ListsDynamic ContactListKind = "dynamic"
)

// ContactListOptions filters list listings.
type ContactListOptions struct {
	Kind   ContactListKind
	Count  int
	Offset int64
}

// Contact is a contact as returned by list membership calls.
type Contact struct {
	Vid        int64          `json:"vid"        yaml:"vid"`
	Properties PropertyValues `json:"properties" yaml:"properties"`
}

// Email returns the contact's email property.
func (c *Contact) Email() string {
	return c.Properties["email"]
}

// ContactPage is one page of list members.
type ContactPage struct {
	Contacts  []Contact `json:"contacts"   yaml:"contacts"`
	HasMore   bool      `json:"has-more"   yaml:"has-more"`
	VidOffset int64     `json:"vid-offset" yaml:"vid-offset"`
}

// ContactPageOptions pages list members.
type ContactPageOptions struct {
	Count      int
	VidOffset  int64
	Recent     bool
	Properties []string
}

// ListMembershipResult reports the outcome of add/remove calls.
type ListMembershipResult struct {
	Updated     []int64 `json:"updated"     yaml:"updated"`
	Discarded   []int64 `json:"discarded"   yaml:"discarded"`
	InvalidVids []int64 `json:"invalidVids" yaml:"invalidVids"`
}

// PropertyOption is one enumeration option of a property.
type PropertyOption struct {
	Label        string `json:"label"                  yaml:"label"`
	Value        string `json:"value"                  yaml:"value"`
	DisplayOrder int    `json:"displayOrder,omitempty" yaml:"displayOrder,omitempty"`
	Hidden       bool   `json:"hidden,omitempty"       yaml:"hidden,omitempty"`
}

// Property is a deal or company property definition.
type Property struct {
	Name                          string           `json:"name"                          yaml:"name"`
	Label                         string           `json:"label"                         yaml:"label"`
	Description                   string           `json:"description"                   yaml:"description"`
	GroupName                     string           `json:"groupName"                     yaml:"groupName"`
	Type                          string           `json:"type"                          yaml:"type"`
	FieldType                     string           `json:"fieldType"                     yaml:"fieldType"`
	Hidden                        bool             `json:"hidden"                        yaml:"hidden"`
	Deleted                       bool             `json:"deleted"                       yaml:"deleted"`
	DisplayOrder                  int              `json:"displayOrder"                  yaml:"displayOrder"`
	FormField                     bool             `json:"formField"                     yaml:"formField"`
	ReadOnlyValue                 bool             `json:"readOnlyValue"                 yaml:"readOnlyValue"`
	ReadOnlyDefinition            bool             `json:"readOnlyDefinition"            yaml:"readOnlyDefinition"`
	MutableDefinitionNotDeletable bool             `json:"mutableDefinitionNotDeletable" yaml:"mutableDefinitionNotDeletable"`
	Calculated                    bool             `json:"calculated"                    yaml:"calculated"`
	ExternalOptions               bool             `json:"externalOptions"               yaml:"externalOptions"`
	DisplayMode                   string           `json:"displayMode"                   yaml:"displayMode"`
	Options                       []PropertyOption `json:"options,omitempty"             yaml:"options,omitempty"`
}

// PropertyFields lists the attributes accepted when writing a property.
var PropertyFields = []string{
	"name", "label", "description", "groupName", "type", "fieldType", "hidden",
	"deleted", "displayOrder", "formField", "readOnlyValue", "readOnlyDefinition",
	"mutableDefinitionNotDeletable", "calculated", "externalOptions", "displayMode",
	"options",
}

// PropertyGroup is a named group of properties.
type PropertyGroup struct {
	Name         string     `json:"name"                 yaml:"name"`
	DisplayName  string     `json:"displayName"          yaml:"displayName"`
	DisplayOrder int        `json:"displayOrder"         yaml:"displayOrder"`
	Properties   []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// PropertyGroupFields lists the attributes accepted when writing a group.
var PropertyGroupFields = []string{"name", "displayName", "displayOrder", "properties"}

// GroupFilter keeps or drops properties and groups by group name. When
// Include is set, Exclude is ignored.
type GroupFilter struct {
	Include []string
	Exclude []string
}

// Keep reports whether a group name passes the filter.
func (f GroupFilter) Keep(group string) bool {
	if len(f.Include) > 0 {
		return containsString(f.Include, group)
	}

	if len(f.Exclude) > 0 {
		return !containsString(f.Exclude, group)
	}

	return true
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}

	return false
}

// Blog is a HubSpot COS blog.
type Blog struct {
	ID          int64          `json:"id"          yaml:"id"`
	PortalID    int64          `json:"portal_id"   yaml:"portal_id"`
	Name        string         `json:"name"        yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Created     int64          `json:"created"     yaml:"created"`
	Updated     int64          `json:"updated"     yaml:"updated"`
	Fields      map[string]any `json:"-"           yaml:"-"`
}

// UnmarshalJSON keeps every attribute available through Get.
func (b *Blog) UnmarshalJSON(data []byte) error {
	type blogAlias Blog

	var alias blogAlias

	err := json.Unmarshal(data, &alias)
	if err != nil {
		return fmt.Errorf("parsing blog: %w", err)
	}

	err = json.Unmarshal(data, &alias.Fields)
	if err != nil {
		return fmt.Errorf("parsing blog fields: %w", err)
	}

	*b = Blog(alias)

	return nil
}

// Get returns a raw attribute of the blog.
func (b *Blog) Get(key string) any {
	return b.Fields[key]
}

// BlogPost is a post of a blog.
type BlogPost struct {
	ID       int64          `json:"id"               yaml:"id"`
	Name     string         `json:"name"             yaml:"name"`
	State    string         `json:"state"            yaml:"state"`
	BlogID   int64          `json:"content_group_id" yaml:"content_group_id"`
	Created  int64          `json:"created"          yaml:"created"`
	TopicIDs []int64        `json:"topic_ids"        yaml:"topic_ids"`
	URL      string         `json:"url"              yaml:"url"`
	Fields   map[string]any `json:"-"                yaml:"-"`
}

// UnmarshalJSON keeps every attribute available through Get.
func (p *BlogPost) UnmarshalJSON(data []byte) error {
	type postAlias BlogPost

	var alias postAlias

	err := json.Unmarshal(data, &alias)
	if err != nil {
		return fmt.Errorf("parsing blog post: %w", err)
	}

	err = json.Unmarshal(data, &alias.Fields)
	if err != nil {
		return fmt.Errorf("parsing blog post fields: %w", err)
	}

	*p = BlogPost(alias)

	return nil
}

// Get returns a raw attribute of the post.
func (p *BlogPost) Get(key string) any {
	return p.Fields[key]
}

// CreatedAt returns the creation time truncated to the second.
func (p *BlogPost) CreatedAt() time.Time {
	return time.Unix(p.Created/1000, 0)
}

// BlogPostOptions filters blog post listings.
type BlogPostOptions struct {
	// State is one of DRAFT, PUBLISHED or SCHEDULED. Defaults to PUBLISHED.
	State string
	// CreatedAfter defaults to two months ago.
	CreatedAfter time.Time
	// OrderBy defaults to -created.
	OrderBy string
	Limit   int
}

// Topic is a blog topic.
type Topic struct {
	ID          int64  `json:"id"          yaml:"id"`
	PortalID    int64  `json:"portalId"    yaml:"portalId"`
	Name        string `json:"name"        yaml:"name"`
	Slug        string `json:"slug"        yaml:"slug"`
	Description string `json:"description" yaml:"description"`
}

// ObjectList is the {"objects": [...]} envelope of the content APIs.
type ObjectList[T any] struct {
	Objects    []T `json:"objects"     yaml:"objects"`
	Limit      int `json:"limit"       yaml:"limit"`
	Offset     int `json:"offset"      yaml:"offset"`
	Total      int `json:"total"       yaml:"total"`
	TotalCount int `json:"total_count" yaml:"total_count"`
}

// CustomEvent is a custom behavioral event occurrence.
type CustomEvent struct {
	EventName  string            `json:"eventName"            yaml:"eventName"`
	ObjectID   string            `json:"objectId,omitempty"   yaml:"objectId,omitempty"`
	Email      string            `json:"email,omitempty"      yaml:"email,omitempty"`
	UTK        string            `json:"utk,omitempty"        yaml:"utk,omitempty"`
	OccurredAt *time.Time        `json:"occurredAt,omitempty" yaml:"occurredAt,omitempty"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}
