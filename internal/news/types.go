// Package news defines the client-side article and bookmark types and the
// normalization from the two wire shapes the server produces for them.
package news

// Article is the normalized article shape used everywhere in the client.
// Query results, daily-digest entries and bookmark records all collapse
// into this.
type Article struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Link       string   `json:"link"`
	Timestamp  string   `json:"timestamp"`
	Tags       []string `json:"tags,omitempty"`
	Bookmarked bool     `json:"bookmarked"`
}

// Bookmark is a persisted reference from a user and workspace to an article.
// Bookmarked is true by construction once a record is materialized.
type Bookmark struct {
	BookmarkID string `json:"bookmark_id"`
	ArticleID  string `json:"article_id"`
	Article
}

// WireArticle is the article shape of the daily_news and query responses.
type WireArticle struct {
	ID          string       `json:"id"`
	Metadata    WireMetadata `json:"metadata"`
	PageContent string       `json:"page_content"`
	Bookmarked  bool         `json:"bookmarked"`
}

// WireBookmark is the record shape of the bookmarks response. Its metadata
// carries fetch_date where the article shape carries publish_date.
type WireBookmark struct {
	BookmarkID  string       `json:"bookmark_id"`
	ArticleID   string       `json:"article_id"`
	Metadata    WireMetadata `json:"metadata"`
	PageContent string       `json:"page_content"`
}

// WireMetadata is the shared metadata block of both wire shapes.
type WireMetadata struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	PublishDate string   `json:"publish_date,omitempty"`
	FetchDate   string   `json:"fetch_date,omitempty"`
	Tags        []string `json:"tags"`
}

// ArticleFromWire normalizes a query-result or digest article.
func ArticleFromWire(w WireArticle) Article {
	return Article{
		ID:         w.ID,
		Title:      w.Metadata.Title,
		Summary:    w.PageContent,
		Link:       w.Metadata.URL,
		Timestamp:  w.Metadata.PublishDate,
		Tags:       w.Metadata.Tags,
		Bookmarked: w.Bookmarked,
	}
}

// ArticlesFromWire normalizes a wire article list. A nil list normalizes to
// an empty one so callers never carry nil news slices.
func ArticlesFromWire(ws []WireArticle) []Article {
	articles := make([]Article, 0, len(ws))
	for _, w := range ws {
		articles = append(articles, ArticleFromWire(w))
	}
	return articles
}

// BookmarkFromWire normalizes a bookmark record.
func BookmarkFromWire(w WireBookmark) Bookmark {
	return Bookmark{
		BookmarkID: w.BookmarkID,
		ArticleID:  w.ArticleID,
		Article: Article{
			ID:         w.ArticleID,
			Title:      w.Metadata.Title,
			Summary:    w.PageContent,
			Link:       w.Metadata.URL,
			Timestamp:  w.Metadata.FetchDate,
			Tags:       w.Metadata.Tags,
			Bookmarked: true,
		},
	}
}

// BookmarksFromWire normalizes a bookmark record list.
func BookmarksFromWire(ws []WireBookmark) []Bookmark {
	bookmarks := make([]Bookmark, 0, len(ws))
	for _, w := range ws {
		bookmarks = append(bookmarks, BookmarkFromWire(w))
	}
	return bookmarks
}
