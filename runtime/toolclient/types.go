package toolclient

// This file enumerates the wire-level request/response shapes for every
// tool-service operation. Field names mirror the operation table exactly
// so the JSON codec round-trips without custom (un)marshaling.

type (
	// DocumentSummary is the shared shape returned by search and listing
	// operations.
	DocumentSummary struct {
		DocumentID      string         `json:"document_id"`
		Title           string         `json:"title"`
		Filename        string         `json:"filename"`
		ContentPreview  string         `json:"content_preview,omitempty"`
		RelevanceScore  float64        `json:"relevance_score,omitempty"`
		Metadata        map[string]any `json:"metadata,omitempty"`
	}

	SearchDocumentsRequest struct {
		Query   string   `json:"query"`
		UserID  string   `json:"user_id"`
		Limit   int      `json:"limit"`
		Filters []string `json:"filters,omitempty"`
	}
	SearchDocumentsResponse struct {
		Results    []DocumentSummary `json:"results"`
		TotalCount int               `json:"total_count"`
	}

	GetDocumentRequest struct {
		DocumentID string `json:"document_id"`
		UserID     string `json:"user_id"`
	}
	GetDocumentResponse struct {
		DocumentID  string         `json:"document_id"`
		Title       string         `json:"title"`
		Filename    string         `json:"filename"`
		ContentType string         `json:"content_type"`
		Metadata    map[string]any `json:"metadata,omitempty"`
	}

	GetDocumentContentRequest struct {
		DocumentID string `json:"document_id"`
		UserID     string `json:"user_id"`
	}
	GetDocumentContentResponse struct {
		Content string `json:"content"`
	}

	DocumentChunk struct {
		Index    int            `json:"index"`
		Content  string         `json:"content"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}
	GetDocumentChunksRequest struct {
		DocumentID string `json:"document_id"`
		UserID     string `json:"user_id"`
		Limit      int    `json:"limit,omitempty"`
	}
	GetDocumentChunksResponse struct {
		Chunks []DocumentChunk `json:"chunks"`
	}

	FindDocumentByPathRequest struct {
		FilePath string `json:"file_path"`
		UserID   string `json:"user_id"`
		BasePath string `json:"base_path,omitempty"`
	}
	FindDocumentByPathResponse struct {
		DocumentID   string `json:"document_id"`
		Filename     string `json:"filename"`
		ResolvedPath string `json:"resolved_path"`
		Found        bool   `json:"found"`
	}

	FindDocumentsByTagsRequest struct {
		RequiredTags   []string `json:"required_tags"`
		CollectionType string   `json:"collection_type,omitempty"`
		Limit          int      `json:"limit"`
	}
	FindDocumentsByTagsResponse struct {
		Documents []DocumentSummary `json:"documents"`
	}

	CreateUserFileRequest struct {
		Filename   string   `json:"filename"`
		Content    string   `json:"content"`
		UserID     string   `json:"user_id"`
		FolderID   string   `json:"folder_id,omitempty"`
		FolderPath string   `json:"folder_path,omitempty"`
		Title      string   `json:"title,omitempty"`
		Tags       []string `json:"tags,omitempty"`
		Category   string   `json:"category,omitempty"`
	}
	CreateUserFileResponse struct {
		Success    bool   `json:"success"`
		DocumentID string `json:"document_id"`
		Filename   string `json:"filename"`
		FolderID   string `json:"folder_id"`
		Message    string `json:"message"`
	}

	CreateUserFolderRequest struct {
		FolderName       string `json:"folder_name"`
		UserID           string `json:"user_id"`
		ParentFolderID   string `json:"parent_folder_id,omitempty"`
		ParentFolderPath string `json:"parent_folder_path,omitempty"`
	}
	CreateUserFolderResponse struct {
		Success        bool   `json:"success"`
		FolderID       string `json:"folder_id"`
		FolderName     string `json:"folder_name"`
		ParentFolderID string `json:"parent_folder_id"`
	}

	UpdateDocumentMetadataRequest struct {
		DocumentID     string `json:"document_id"`
		UserID         string `json:"user_id"`
		Title          string `json:"title,omitempty"`
		FrontmatterType string `json:"frontmatter_type,omitempty"`
	}
	UpdateDocumentMetadataResponse struct {
		Success       bool     `json:"success"`
		UpdatedFields []string `json:"updated_fields"`
	}

	UpdateDocumentContentRequest struct {
		DocumentID string `json:"document_id"`
		Content    string `json:"content"`
		UserID     string `json:"user_id"`
		Append     bool   `json:"append"`
	}
	UpdateDocumentContentResponse struct {
		Success       bool `json:"success"`
		ContentLength int  `json:"content_length"`
	}

	EditOperation struct {
		Op      string `json:"op"`
		Anchor  string `json:"anchor,omitempty"`
		Content string `json:"content,omitempty"`
	}
	ProposeDocumentEditRequest struct {
		DocumentID     string          `json:"document_id"`
		EditType       string          `json:"edit_type"`
		Operations     []EditOperation `json:"operations,omitempty"`
		ContentEdit    string          `json:"content_edit,omitempty"`
		AgentName      string          `json:"agent_name"`
		Summary        string          `json:"summary"`
		RequiresPreview bool           `json:"requires_preview"`
	}
	ProposeDocumentEditResponse struct {
		Success    bool   `json:"success"`
		ProposalID string `json:"proposal_id"`
	}

	ApplyOperationsDirectlyRequest struct {
		DocumentID string          `json:"document_id"`
		Operations []EditOperation `json:"operations"`
		UserID     string          `json:"user_id"`
		AgentName  string          `json:"agent_name"`
	}
	ApplyOperationsDirectlyResponse struct {
		Success      bool `json:"success"`
		AppliedCount int  `json:"applied_count"`
	}

	ApplyDocumentEditProposalRequest struct {
		ProposalID             string `json:"proposal_id"`
		SelectedOperationIndices []int `json:"selected_operation_indices,omitempty"`
		UserID                 string `json:"user_id"`
	}
	ApplyDocumentEditProposalResponse struct {
		Success      bool   `json:"success"`
		DocumentID   string `json:"document_id"`
		AppliedCount int    `json:"applied_count"`
	}

	GetWeatherRequest struct {
		Location  string   `json:"location"`
		UserID    string   `json:"user_id"`
		DataTypes []string `json:"data_types,omitempty"`
		DateStr   string   `json:"date_str,omitempty"`
	}
	GetWeatherResponse struct {
		Location         string         `json:"location"`
		CurrentConditions map[string]any `json:"current_conditions"`
		Forecast         []map[string]any `json:"forecast"`
		Alerts           []string       `json:"alerts"`
		Metadata         map[string]any `json:"metadata,omitempty"`
	}

	GeneratedImage struct {
		Filename string `json:"filename"`
		Path     string `json:"path"`
		URL      string `json:"url"`
		Width    int    `json:"width"`
		Height   int    `json:"height"`
		Format   string `json:"format"`
	}
	GenerateImageRequest struct {
		Prompt         string `json:"prompt"`
		Size           string `json:"size"`
		Format         string `json:"format"`
		Seed           *int64 `json:"seed,omitempty"`
		NumImages      int    `json:"num_images"`
		NegativePrompt string `json:"negative_prompt,omitempty"`
		UserID         string `json:"user_id"`
	}
	GenerateImageResponse struct {
		Success bool             `json:"success"`
		Model   string           `json:"model"`
		Images  []GeneratedImage `json:"images"`
	}

	SearchWebRequest struct {
		Query      string `json:"query"`
		MaxResults int    `json:"max_results"`
		UserID     string `json:"user_id"`
	}
	WebResult struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Snippet string `json:"snippet"`
		Content string `json:"content,omitempty"`
	}
	SearchWebResponse struct {
		Results []WebResult `json:"results"`
	}

	SearchAndCrawlRequest struct {
		Query      string `json:"query"`
		MaxResults int    `json:"max_results"`
		UserID     string `json:"user_id"`
	}
	SearchAndCrawlResponse struct {
		Results []WebResult `json:"results"`
	}

	CrawlWebContentRequest struct {
		URL    string   `json:"url,omitempty"`
		URLs   []string `json:"urls,omitempty"`
		UserID string   `json:"user_id"`
	}
	CrawledPage struct {
		URL      string         `json:"url"`
		Title    string         `json:"title"`
		Content  string         `json:"content"`
		HTML     string         `json:"html,omitempty"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}
	CrawlWebContentResponse struct {
		Pages []CrawledPage `json:"pages"`
	}

	CrawlWebsiteRecursiveRequest struct {
		StartURL string `json:"start_url"`
		MaxPages int    `json:"max_pages"`
		MaxDepth int    `json:"max_depth"`
		UserID   string `json:"user_id"`
	}
	CrawlWebsiteRecursiveResponse struct {
		Pages      []CrawledPage `json:"pages"`
		TotalPages int           `json:"total_pages"`
		TotalBytes int64         `json:"total_bytes"`
	}

	CrawlSiteRequest struct {
		SeedURL            string `json:"seed_url"`
		QueryCriteria      string `json:"query_criteria,omitempty"`
		MaxPages           int    `json:"max_pages"`
		MaxDepth           int    `json:"max_depth"`
		AllowedPathPrefix  string `json:"allowed_path_prefix,omitempty"`
		IncludePDFs        bool   `json:"include_pdfs"`
		UserID             string `json:"user_id"`
	}
	CrawlSiteResponse struct {
		Domain            string        `json:"domain"`
		SuccessfulCrawls  int           `json:"successful_crawls"`
		URLsConsidered    int           `json:"urls_considered"`
		Results           []CrawledPage `json:"results"`
	}

	ExpandQueryRequest struct {
		Query               string `json:"query"`
		NumVariations       int    `json:"num_variations"`
		UserID              string `json:"user_id"`
		ConversationContext string `json:"conversation_context,omitempty"`
	}
	ExpandQueryResponse struct {
		OriginalQuery   string   `json:"original_query"`
		ExpandedQueries []string `json:"expanded_queries"`
		KeyEntities     []string `json:"key_entities"`
		ExpansionCount  int      `json:"expansion_count"`
	}

	CacheEntry struct {
		Content        string  `json:"content"`
		Timestamp      string  `json:"timestamp"`
		AgentName      string  `json:"agent_name"`
		RelevanceScore float64 `json:"relevance_score"`
	}
	SearchConversationCacheRequest struct {
		Query          string `json:"query"`
		ConversationID string `json:"conversation_id,omitempty"`
		FreshnessHours int    `json:"freshness_hours"`
		UserID         string `json:"user_id"`
	}
	SearchConversationCacheResponse struct {
		CacheHit bool         `json:"cache_hit"`
		Entries  []CacheEntry `json:"entries"`
	}

	UpdateConversationTitleRequest struct {
		ConversationID string `json:"conversation_id"`
		Title          string `json:"title"`
		UserID         string `json:"user_id"`
	}
	UpdateConversationTitleResponse struct {
		Success bool   `json:"success"`
		Title   string `json:"title"`
	}

	CreateChartRequest struct {
		ChartType     string `json:"chart_type"`
		Data          any    `json:"data"`
		Title         string `json:"title,omitempty"`
		XLabel        string `json:"x_label,omitempty"`
		YLabel        string `json:"y_label,omitempty"`
		Interactive   bool   `json:"interactive"`
		ColorScheme   string `json:"color_scheme,omitempty"`
		Width         int    `json:"width,omitempty"`
		Height        int    `json:"height,omitempty"`
		IncludeStatic bool   `json:"include_static"`
	}
	CreateChartResponse struct {
		Success      bool           `json:"success"`
		ChartType    string         `json:"chart_type"`
		OutputFormat string         `json:"output_format"`
		ChartData    string         `json:"chart_data"`
		Metadata     map[string]any `json:"metadata,omitempty"`
	}

	AnalyzeTextContentRequest struct {
		Content         string `json:"content"`
		IncludeAdvanced bool   `json:"include_advanced"`
		UserID          string `json:"user_id"`
	}
	AnalyzeTextContentResponse struct {
		WordCount      int            `json:"word_count"`
		SentenceCount  int            `json:"sentence_count"`
		ReadabilityScore float64      `json:"readability_score,omitempty"`
		Metrics        map[string]any `json:"metrics,omitempty"`
	}

	// Entity-search family.
	EntityRecord struct {
		EntityID string         `json:"entity_id"`
		Name     string         `json:"name"`
		Type     string         `json:"type"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}
	SearchEntitiesRequest struct {
		Query  string `json:"query"`
		UserID string `json:"user_id"`
		Limit  int    `json:"limit,omitempty"`
	}
	SearchEntitiesResponse struct {
		Entities []EntityRecord `json:"entities"`
	}
	GetEntityRequest struct {
		EntityID string `json:"entity_id"`
		UserID   string `json:"user_id"`
	}
	GetEntityResponse struct {
		Entity EntityRecord `json:"entity"`
		Found  bool         `json:"found"`
	}
	FindDocumentsByEntitiesRequest struct {
		EntityIDs []string `json:"entity_ids"`
		UserID    string   `json:"user_id"`
		Limit     int      `json:"limit,omitempty"`
	}
	FindDocumentsByEntitiesResponse struct {
		Documents []DocumentSummary `json:"documents"`
	}
	FindRelatedDocumentsByEntitiesRequest struct {
		DocumentID string `json:"document_id"`
		UserID     string `json:"user_id"`
		Limit      int    `json:"limit,omitempty"`
	}
	FindRelatedDocumentsByEntitiesResponse struct {
		Documents []DocumentSummary `json:"documents"`
	}
	FindCoOccurringEntitiesRequest struct {
		EntityID string `json:"entity_id"`
		UserID   string `json:"user_id"`
		Limit    int    `json:"limit,omitempty"`
	}
	FindCoOccurringEntitiesResponse struct {
		Entities []EntityRecord `json:"entities"`
	}

	// Org-inbox family.
	AddOrgInboxItemRequest struct {
		UserID              string   `json:"user_id"`
		Title               string   `json:"title"`
		EntryKind           string   `json:"entry_kind"`
		Schedule            string   `json:"schedule,omitempty"`
		Repeater            string   `json:"repeater,omitempty"`
		SuggestedTags       []string `json:"suggested_tags,omitempty"`
		ContactProperties   map[string]string `json:"contact_properties,omitempty"`
	}
	AddOrgInboxItemResponse struct {
		Success bool   `json:"success"`
		ItemID  string `json:"item_id"`
	}
	OrgInboxItem struct {
		ItemID    string `json:"item_id"`
		Title     string `json:"title"`
		EntryKind string `json:"entry_kind"`
		Schedule  string `json:"schedule,omitempty"`
		Done      bool   `json:"done"`
	}
	ListOrgInboxItemsRequest struct {
		UserID      string `json:"user_id"`
		IncludeDone bool   `json:"include_done"`
	}
	ListOrgInboxItemsResponse struct {
		Items []OrgInboxItem `json:"items"`
	}
	ToggleOrgInboxItemRequest struct {
		UserID string `json:"user_id"`
		ItemID string `json:"item_id"`
	}
	ToggleOrgInboxItemResponse struct {
		Success bool `json:"success"`
		Done    bool `json:"done"`
	}
	UpdateOrgInboxItemRequest struct {
		UserID string `json:"user_id"`
		ItemID string `json:"item_id"`
		Title  string `json:"title,omitempty"`
	}
	UpdateOrgInboxItemResponse struct {
		Success bool `json:"success"`
	}
	SetOrgInboxScheduleRequest struct {
		UserID   string `json:"user_id"`
		ItemID   string `json:"item_id"`
		Schedule string `json:"schedule"`
		Repeater string `json:"repeater,omitempty"`
	}
	SetOrgInboxScheduleResponse struct {
		Success bool `json:"success"`
	}
	ArchiveOrgInboxDoneRequest struct {
		UserID string `json:"user_id"`
	}
	ArchiveOrgInboxDoneResponse struct {
		Success      bool `json:"success"`
		ArchivedCount int `json:"archived_count"`
	}
	AppendOrgInboxTextRequest struct {
		UserID string `json:"user_id"`
		Text   string `json:"text"`
	}
	AppendOrgInboxTextResponse struct {
		Success bool `json:"success"`
	}
)
