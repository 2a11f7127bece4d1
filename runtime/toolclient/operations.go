package toolclient

import "context"

// ToolClient is the narrow interface nodes and agents depend on, so tests
// can substitute a fake without dialing a real connection (mirrors the
// teacher's RegistryClient / GRPCClientAdapter split).
type ToolClient interface {
	SearchDocuments(ctx context.Context, req SearchDocumentsRequest) (*SearchDocumentsResponse, error)
	GetDocument(ctx context.Context, req GetDocumentRequest) (*GetDocumentResponse, error)
	GetDocumentContent(ctx context.Context, req GetDocumentContentRequest) (*GetDocumentContentResponse, error)
	GetDocumentChunks(ctx context.Context, req GetDocumentChunksRequest) (*GetDocumentChunksResponse, error)
	FindDocumentByPath(ctx context.Context, req FindDocumentByPathRequest) (*FindDocumentByPathResponse, error)
	FindDocumentsByTags(ctx context.Context, req FindDocumentsByTagsRequest) (*FindDocumentsByTagsResponse, error)
	CreateUserFile(ctx context.Context, req CreateUserFileRequest) (*CreateUserFileResponse, error)
	CreateUserFolder(ctx context.Context, req CreateUserFolderRequest) (*CreateUserFolderResponse, error)
	UpdateDocumentMetadata(ctx context.Context, req UpdateDocumentMetadataRequest) (*UpdateDocumentMetadataResponse, error)
	UpdateDocumentContent(ctx context.Context, req UpdateDocumentContentRequest) (*UpdateDocumentContentResponse, error)
	ProposeDocumentEdit(ctx context.Context, req ProposeDocumentEditRequest) (*ProposeDocumentEditResponse, error)
	ApplyOperationsDirectly(ctx context.Context, req ApplyOperationsDirectlyRequest) (*ApplyOperationsDirectlyResponse, error)
	ApplyDocumentEditProposal(ctx context.Context, req ApplyDocumentEditProposalRequest) (*ApplyDocumentEditProposalResponse, error)
	GetWeather(ctx context.Context, req GetWeatherRequest) (*GetWeatherResponse, error)
	GenerateImage(ctx context.Context, req GenerateImageRequest) (*GenerateImageResponse, error)
	SearchEntities(ctx context.Context, req SearchEntitiesRequest) (*SearchEntitiesResponse, error)
	GetEntity(ctx context.Context, req GetEntityRequest) (*GetEntityResponse, error)
	FindDocumentsByEntities(ctx context.Context, req FindDocumentsByEntitiesRequest) (*FindDocumentsByEntitiesResponse, error)
	FindRelatedDocumentsByEntities(ctx context.Context, req FindRelatedDocumentsByEntitiesRequest) (*FindRelatedDocumentsByEntitiesResponse, error)
	FindCoOccurringEntities(ctx context.Context, req FindCoOccurringEntitiesRequest) (*FindCoOccurringEntitiesResponse, error)
	SearchWeb(ctx context.Context, req SearchWebRequest) (*SearchWebResponse, error)
	SearchAndCrawl(ctx context.Context, req SearchAndCrawlRequest) (*SearchAndCrawlResponse, error)
	CrawlWebContent(ctx context.Context, req CrawlWebContentRequest) (*CrawlWebContentResponse, error)
	CrawlWebsiteRecursive(ctx context.Context, req CrawlWebsiteRecursiveRequest) (*CrawlWebsiteRecursiveResponse, error)
	CrawlSite(ctx context.Context, req CrawlSiteRequest) (*CrawlSiteResponse, error)
	ExpandQuery(ctx context.Context, req ExpandQueryRequest) (*ExpandQueryResponse, error)
	SearchConversationCache(ctx context.Context, req SearchConversationCacheRequest) (*SearchConversationCacheResponse, error)
	UpdateConversationTitle(ctx context.Context, req UpdateConversationTitleRequest) (*UpdateConversationTitleResponse, error)
	CreateChart(ctx context.Context, req CreateChartRequest) (*CreateChartResponse, error)
	AnalyzeTextContent(ctx context.Context, req AnalyzeTextContentRequest) (*AnalyzeTextContentResponse, error)
	AddOrgInboxItem(ctx context.Context, req AddOrgInboxItemRequest) (*AddOrgInboxItemResponse, error)
	ListOrgInboxItems(ctx context.Context, req ListOrgInboxItemsRequest) (*ListOrgInboxItemsResponse, error)
	ToggleOrgInboxItem(ctx context.Context, req ToggleOrgInboxItemRequest) (*ToggleOrgInboxItemResponse, error)
	UpdateOrgInboxItem(ctx context.Context, req UpdateOrgInboxItemRequest) (*UpdateOrgInboxItemResponse, error)
	SetOrgInboxSchedule(ctx context.Context, req SetOrgInboxScheduleRequest) (*SetOrgInboxScheduleResponse, error)
	ArchiveOrgInboxDone(ctx context.Context, req ArchiveOrgInboxDoneRequest) (*ArchiveOrgInboxDoneResponse, error)
	AppendOrgInboxText(ctx context.Context, req AppendOrgInboxTextRequest) (*AppendOrgInboxTextResponse, error)
}

var _ ToolClient = (*Client)(nil)

func (c *Client) SearchDocuments(ctx context.Context, req SearchDocumentsRequest) (*SearchDocumentsResponse, error) {
	resp := &SearchDocumentsResponse{}
	return resp, c.call(ctx, "SearchDocuments", &req, resp)
}

func (c *Client) GetDocument(ctx context.Context, req GetDocumentRequest) (*GetDocumentResponse, error) {
	resp := &GetDocumentResponse{}
	return resp, c.call(ctx, "GetDocument", &req, resp)
}

func (c *Client) GetDocumentContent(ctx context.Context, req GetDocumentContentRequest) (*GetDocumentContentResponse, error) {
	resp := &GetDocumentContentResponse{}
	return resp, c.call(ctx, "GetDocumentContent", &req, resp)
}

func (c *Client) GetDocumentChunks(ctx context.Context, req GetDocumentChunksRequest) (*GetDocumentChunksResponse, error) {
	resp := &GetDocumentChunksResponse{}
	return resp, c.call(ctx, "GetDocumentChunks", &req, resp)
}

func (c *Client) FindDocumentByPath(ctx context.Context, req FindDocumentByPathRequest) (*FindDocumentByPathResponse, error) {
	resp := &FindDocumentByPathResponse{}
	return resp, c.call(ctx, "FindDocumentByPath", &req, resp)
}

func (c *Client) FindDocumentsByTags(ctx context.Context, req FindDocumentsByTagsRequest) (*FindDocumentsByTagsResponse, error) {
	resp := &FindDocumentsByTagsResponse{}
	return resp, c.call(ctx, "FindDocumentsByTags", &req, resp)
}

func (c *Client) CreateUserFile(ctx context.Context, req CreateUserFileRequest) (*CreateUserFileResponse, error) {
	resp := &CreateUserFileResponse{}
	return resp, c.call(ctx, "CreateUserFile", &req, resp)
}

func (c *Client) CreateUserFolder(ctx context.Context, req CreateUserFolderRequest) (*CreateUserFolderResponse, error) {
	resp := &CreateUserFolderResponse{}
	return resp, c.call(ctx, "CreateUserFolder", &req, resp)
}

func (c *Client) UpdateDocumentMetadata(ctx context.Context, req UpdateDocumentMetadataRequest) (*UpdateDocumentMetadataResponse, error) {
	resp := &UpdateDocumentMetadataResponse{}
	return resp, c.call(ctx, "UpdateDocumentMetadata", &req, resp)
}

func (c *Client) UpdateDocumentContent(ctx context.Context, req UpdateDocumentContentRequest) (*UpdateDocumentContentResponse, error) {
	resp := &UpdateDocumentContentResponse{}
	return resp, c.call(ctx, "UpdateDocumentContent", &req, resp)
}

func (c *Client) ProposeDocumentEdit(ctx context.Context, req ProposeDocumentEditRequest) (*ProposeDocumentEditResponse, error) {
	resp := &ProposeDocumentEditResponse{}
	return resp, c.call(ctx, "ProposeDocumentEdit", &req, resp)
}

func (c *Client) ApplyOperationsDirectly(ctx context.Context, req ApplyOperationsDirectlyRequest) (*ApplyOperationsDirectlyResponse, error) {
	resp := &ApplyOperationsDirectlyResponse{}
	return resp, c.call(ctx, "ApplyOperationsDirectly", &req, resp)
}

func (c *Client) ApplyDocumentEditProposal(ctx context.Context, req ApplyDocumentEditProposalRequest) (*ApplyDocumentEditProposalResponse, error) {
	resp := &ApplyDocumentEditProposalResponse{}
	return resp, c.call(ctx, "ApplyDocumentEditProposal", &req, resp)
}

func (c *Client) GetWeather(ctx context.Context, req GetWeatherRequest) (*GetWeatherResponse, error) {
	resp := &GetWeatherResponse{}
	return resp, c.call(ctx, "GetWeather", &req, resp)
}

func (c *Client) GenerateImage(ctx context.Context, req GenerateImageRequest) (*GenerateImageResponse, error) {
	resp := &GenerateImageResponse{}
	return resp, c.call(ctx, "GenerateImage", &req, resp)
}

func (c *Client) SearchEntities(ctx context.Context, req SearchEntitiesRequest) (*SearchEntitiesResponse, error) {
	resp := &SearchEntitiesResponse{}
	return resp, c.call(ctx, "SearchEntities", &req, resp)
}

func (c *Client) GetEntity(ctx context.Context, req GetEntityRequest) (*GetEntityResponse, error) {
	resp := &GetEntityResponse{}
	return resp, c.call(ctx, "GetEntity", &req, resp)
}

func (c *Client) FindDocumentsByEntities(ctx context.Context, req FindDocumentsByEntitiesRequest) (*FindDocumentsByEntitiesResponse, error) {
	resp := &FindDocumentsByEntitiesResponse{}
	return resp, c.call(ctx, "FindDocumentsByEntities", &req, resp)
}

func (c *Client) FindRelatedDocumentsByEntities(ctx context.Context, req FindRelatedDocumentsByEntitiesRequest) (*FindRelatedDocumentsByEntitiesResponse, error) {
	resp := &FindRelatedDocumentsByEntitiesResponse{}
	return resp, c.call(ctx, "FindRelatedDocumentsByEntities", &req, resp)
}

func (c *Client) FindCoOccurringEntities(ctx context.Context, req FindCoOccurringEntitiesRequest) (*FindCoOccurringEntitiesResponse, error) {
	resp := &FindCoOccurringEntitiesResponse{}
	return resp, c.call(ctx, "FindCoOccurringEntities", &req, resp)
}

func (c *Client) SearchWeb(ctx context.Context, req SearchWebRequest) (*SearchWebResponse, error) {
	resp := &SearchWebResponse{}
	return resp, c.call(ctx, "SearchWeb", &req, resp)
}

func (c *Client) SearchAndCrawl(ctx context.Context, req SearchAndCrawlRequest) (*SearchAndCrawlResponse, error) {
	resp := &SearchAndCrawlResponse{}
	return resp, c.call(ctx, "SearchAndCrawl", &req, resp)
}

func (c *Client) CrawlWebContent(ctx context.Context, req CrawlWebContentRequest) (*CrawlWebContentResponse, error) {
	resp := &CrawlWebContentResponse{}
	return resp, c.call(ctx, "CrawlWebContent", &req, resp)
}

func (c *Client) CrawlWebsiteRecursive(ctx context.Context, req CrawlWebsiteRecursiveRequest) (*CrawlWebsiteRecursiveResponse, error) {
	resp := &CrawlWebsiteRecursiveResponse{}
	return resp, c.call(ctx, "CrawlWebsiteRecursive", &req, resp)
}

func (c *Client) CrawlSite(ctx context.Context, req CrawlSiteRequest) (*CrawlSiteResponse, error) {
	resp := &CrawlSiteResponse{}
	return resp, c.call(ctx, "CrawlSite", &req, resp)
}

func (c *Client) ExpandQuery(ctx context.Context, req ExpandQueryRequest) (*ExpandQueryResponse, error) {
	resp := &ExpandQueryResponse{}
	return resp, c.call(ctx, "ExpandQuery", &req, resp)
}

func (c *Client) SearchConversationCache(ctx context.Context, req SearchConversationCacheRequest) (*SearchConversationCacheResponse, error) {
	resp := &SearchConversationCacheResponse{}
	return resp, c.call(ctx, "SearchConversationCache", &req, resp)
}

func (c *Client) UpdateConversationTitle(ctx context.Context, req UpdateConversationTitleRequest) (*UpdateConversationTitleResponse, error) {
	resp := &UpdateConversationTitleResponse{}
	return resp, c.call(ctx, "UpdateConversationTitle", &req, resp)
}

func (c *Client) CreateChart(ctx context.Context, req CreateChartRequest) (*CreateChartResponse, error) {
	resp := &CreateChartResponse{}
	return resp, c.call(ctx, "CreateChart", &req, resp)
}

func (c *Client) AnalyzeTextContent(ctx context.Context, req AnalyzeTextContentRequest) (*AnalyzeTextContentResponse, error) {
	resp := &AnalyzeTextContentResponse{}
	return resp, c.call(ctx, "AnalyzeTextContent", &req, resp)
}

func (c *Client) AddOrgInboxItem(ctx context.Context, req AddOrgInboxItemRequest) (*AddOrgInboxItemResponse, error) {
	resp := &AddOrgInboxItemResponse{}
	return resp, c.call(ctx, "AddOrgInboxItem", &req, resp)
}

func (c *Client) ListOrgInboxItems(ctx context.Context, req ListOrgInboxItemsRequest) (*ListOrgInboxItemsResponse, error) {
	resp := &ListOrgInboxItemsResponse{}
	return resp, c.call(ctx, "ListOrgInboxItems", &req, resp)
}

func (c *Client) ToggleOrgInboxItem(ctx context.Context, req ToggleOrgInboxItemRequest) (*ToggleOrgInboxItemResponse, error) {
	resp := &ToggleOrgInboxItemResponse{}
	return resp, c.call(ctx, "ToggleOrgInboxItem", &req, resp)
}

func (c *Client) UpdateOrgInboxItem(ctx context.Context, req UpdateOrgInboxItemRequest) (*UpdateOrgInboxItemResponse, error) {
	resp := &UpdateOrgInboxItemResponse{}
	return resp, c.call(ctx, "UpdateOrgInboxItem", &req, resp)
}

func (c *Client) SetOrgInboxSchedule(ctx context.Context, req SetOrgInboxScheduleRequest) (*SetOrgInboxScheduleResponse, error) {
	resp := &SetOrgInboxScheduleResponse{}
	return resp, c.call(ctx, "SetOrgInboxSchedule", &req, resp)
}

func (c *Client) ArchiveOrgInboxDone(ctx context.Context, req ArchiveOrgInboxDoneRequest) (*ArchiveOrgInboxDoneResponse, error) {
	resp := &ArchiveOrgInboxDoneResponse{}
	return resp, c.call(ctx, "ArchiveOrgInboxDone", &req, resp)
}

func (c *Client) AppendOrgInboxText(ctx context.Context, req AppendOrgInboxTextRequest) (*AppendOrgInboxTextResponse, error) {
	resp := &AppendOrgInboxTextResponse{}
	return resp, c.call(ctx, "AppendOrgInboxText", &req, resp)
}
