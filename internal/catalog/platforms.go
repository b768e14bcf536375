package catalog

// Category groups distribution platforms by delivery model.
type Category string

const (
	CategoryStreaming Category = "streaming"
	CategoryDownloads Category = "downloads"
	CategorySocial    Category = "social"
)

// Platform is a catalog entry for one distribution target. Entries are
// immutable and loaded once; there is no mutation API.
type Platform struct {
	ID       string
	Name     string
	Category Category
	Icon     string
}

var platforms = []Platform{
	{ID: "spotify", Name: "Spotify", Category: CategoryStreaming, Icon: "spotify"},
	{ID: "apple-music", Name: "Apple Music", Category: CategoryStreaming, Icon: "apple"},
	{ID: "youtube-music", Name: "YouTube Music", Category: CategoryStreaming, Icon: "youtube"},
	{ID: "amazon-music", Name: "Amazon Music", Category: CategoryStreaming, Icon: "amazon"},
	{ID: "deezer", Name: "Deezer", Category: CategoryStreaming, Icon: "deezer"},
	{ID: "tidal", Name: "Tidal", Category: CategoryStreaming, Icon: "tidal"},
	{ID: "pandora", Name: "Pandora", Category: CategoryStreaming, Icon: "pandora"},
	{ID: "itunes", Name: "iTunes Store", Category: CategoryDownloads, Icon: "itunes"},
	{ID: "amazon-mp3", Name: "Amazon MP3", Category: CategoryDownloads, Icon: "amazon"},
	{ID: "beatport", Name: "Beatport", Category: CategoryDownloads, Icon: "beatport"},
	{ID: "tiktok", Name: "TikTok", Category: CategorySocial, Icon: "tiktok"},
	{ID: "instagram", Name: "Instagram & Facebook", Category: CategorySocial, Icon: "instagram"},
	{ID: "youtube-content-id", Name: "YouTube Content ID", Category: CategorySocial, Icon: "youtube"},
	{ID: "snapchat", Name: "Snapchat", Category: CategorySocial, Icon: "snapchat"},
}

var platformIndex = func() map[string]Platform {
	index := make(map[string]Platform, len(platforms))
	for _, p := range platforms {
		index[p.ID] = p
	}
	return index
}()

// ListAll returns every catalog platform in registry order.
func ListAll() []Platform {
	cp := make([]Platform, len(platforms))
	copy(cp, platforms)
	return cp
}

// Resolve looks up a platform by id.
func Resolve(id string) (Platform, bool) {
	p, ok := platformIndex[id]
	return p, ok
}

// ByCategory returns the platforms belonging to one category, in registry
// order.
func ByCategory(category Category) []Platform {
	var matched []Platform
	for _, p := range platforms {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched
}

// Categories returns the known categories in presentation order.
func Categories() []Category {
	return []Category{CategoryStreaming, CategoryDownloads, CategorySocial}
}
