// Package seed loads the demo catalog: five categories and eight freely
// licensed sample films. Seeding is idempotent; rows are matched by category
// name and stream title and never overwritten.
package seed

import (
	"context"
	"errors"
	"fmt"

	"sune-tv/internal/model"
	"sune-tv/internal/repository"
	"sune-tv/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SampleCategory struct {
	Name        string
	Description string
	Order       int
}

type SampleStream struct {
	Title       string
	Description string
	Category    string
	Thumbnail   string
	Banner      string
	URL         string
	Duration    string
	ReleaseYear int
	Rating      float64
	Quality     model.Quality
	IsFeatured  bool
}

const sampleBucket = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/"

var SampleCategories = []SampleCategory{
	{Name: "Movies", Description: "Feature films and cinema", Order: 1},
	{Name: "Series", Description: "TV series and shows", Order: 2},
	{Name: "Documentary", Description: "Documentary films and series", Order: 3},
	{Name: "Live TV", Description: "Live streaming channels", Order: 4},
	{Name: "Sports", Description: "Sports events and highlights", Order: 5},
}

var SampleStreams = []SampleStream{
	{
		Title:       "Big Buck Bunny",
		Description: "A large and lovable rabbit deals with three tiny bullies, led by a flying squirrel, who are determined to squelch his happiness.",
		Category:    "Movies",
		Thumbnail:   "https://peach.blender.org/wp-content/uploads/title_anouncement.jpg?x11217",
		Banner:      "https://peach.blender.org/wp-content/uploads/poster_rodents_small.jpg?x11217",
		URL:         sampleBucket + "BigBuckBunny.mp4",
		Duration:    "9m 56s",
		ReleaseYear: 2008,
		Rating:      8.5,
		Quality:     model.QualityHD,
		IsFeatured:  true,
	},
	{
		Title:       "Sintel",
		Description: "A wandering warrior finds an unlikely friend in the form of a young dragon. The two develop a bond that is tested as they search for the dragon's kin.",
		Category:    "Movies",
		Thumbnail:   "https://durian.blender.org/wp-content/uploads/2010/06/sintel_trailer_iphone_08.jpg",
		URL:         sampleBucket + "Sintel.mp4",
		Duration:    "14m 48s",
		ReleaseYear: 2010,
		Rating:      9.0,
		Quality:     model.QualityHD,
		IsFeatured:  true,
	},
	{
		Title:       "Tears of Steel",
		Description: "In an apocalyptic future, a group of scientists and warriors must protect the last bastion of humanity.",
		Category:    "Movies",
		Thumbnail:   "https://mango.blender.org/wp-content/uploads/2012/09/03_thom_celia.jpg",
		URL:         sampleBucket + "TearsOfSteel.mp4",
		Duration:    "12m 14s",
		ReleaseYear: 2012,
		Rating:      7.8,
		Quality:     model.QualityFHD,
	},
	{
		Title:       "Elephants Dream",
		Description: "The story of two strange characters exploring a capricious and seemingly infinite machine.",
		Category:    "Documentary",
		Thumbnail:   "https://orange.blender.org/wp-content/themes/orange/images/media/svn_tree.jpg",
		URL:         sampleBucket + "ElephantsDream.mp4",
		Duration:    "10m 54s",
		ReleaseYear: 2006,
		Rating:      7.2,
		Quality:     model.QualityHD,
	},
	{
		Title:       "For Bigger Blazes",
		Description: "Experience the thrill of adventure with stunning visuals.",
		Category:    "Series",
		Thumbnail:   "https://via.placeholder.com/300x200?text=For+Bigger+Blazes",
		URL:         sampleBucket + "ForBiggerBlazes.mp4",
		Duration:    "15s",
		Rating:      8.0,
		Quality:     model.QualityHD,
	},
	{
		Title:       "For Bigger Escapes",
		Description: "Journey through breathtaking landscapes.",
		Category:    "Series",
		Thumbnail:   "https://via.placeholder.com/300x200?text=For+Bigger+Escapes",
		URL:         sampleBucket + "ForBiggerEscapes.mp4",
		Duration:    "15s",
		Rating:      7.5,
		Quality:     model.QualityHD,
	},
	{
		Title:       "For Bigger Fun",
		Description: "Entertainment for the whole family.",
		Category:    "Series",
		Thumbnail:   "https://via.placeholder.com/300x200?text=For+Bigger+Fun",
		URL:         sampleBucket + "ForBiggerFun.mp4",
		Duration:    "60s",
		Rating:      8.2,
		Quality:     model.QualityFHD,
	},
	{
		Title:       "For Bigger Joyrides",
		Description: "Thrilling adventures await in this exciting series.",
		Category:    "Sports",
		Thumbnail:   "https://via.placeholder.com/300x200?text=For+Bigger+Joyrides",
		URL:         sampleBucket + "ForBiggerJoyrides.mp4",
		Duration:    "15s",
		Rating:      7.9,
		Quality:     model.QualityHD,
	},
}

// Result counts what a Run created versus found already present.
type Result struct {
	CategoriesCreated  int
	CategoriesExisting int
	StreamsCreated     int
	StreamsExisting    int
	// CreatedStreamIDs lists new streams so callers can announce them.
	CreatedStreamIDs []int64
}

// Run get-or-creates the sample catalog in one transaction.
func Run(ctx context.Context, db *gorm.DB) (*Result, error) {
	res := &Result{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryRepo := repository.NewCategoryRepository(tx)
		streamRepo := repository.NewStreamRepository(tx)

		categories := make(map[string]*model.Category, len(SampleCategories))
		for _, item := range SampleCategories {
			category, created, err := getOrCreateCategory(ctx, categoryRepo, item)
			if err != nil {
				return fmt.Errorf("seed category %q: %w", item.Name, err)
			}
			categories[item.Name] = category
			if created {
				res.CategoriesCreated++
				logger.Info("Created category", zap.String("name", category.Name))
			} else {
				res.CategoriesExisting++
				logger.Debug("Category already exists", zap.String("name", category.Name))
			}
		}

		for _, item := range SampleStreams {
			stream, created, err := getOrCreateStream(ctx, streamRepo, item, categories[item.Category])
			if err != nil {
				return fmt.Errorf("seed stream %q: %w", item.Title, err)
			}
			if created {
				res.StreamsCreated++
				res.CreatedStreamIDs = append(res.CreatedStreamIDs, stream.ID)
				logger.Info("Created stream", zap.String("title", stream.Title), zap.String("category", item.Category))
			} else {
				res.StreamsExisting++
				logger.Debug("Stream already exists", zap.String("title", stream.Title))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func getOrCreateCategory(ctx context.Context, repo *repository.CategoryRepository, item SampleCategory) (*model.Category, bool, error) {
	existing, err := repo.FindByName(ctx, item.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	category := &model.Category{
		Name:        item.Name,
		Description: item.Description,
		Order:       item.Order,
		IsActive:    true,
	}
	if err := repo.Create(ctx, category); err != nil {
		return nil, false, err
	}
	return category, true, nil
}

func getOrCreateStream(ctx context.Context, repo *repository.StreamRepository, item SampleStream, category *model.Category) (*model.Stream, bool, error) {
	if category == nil {
		return nil, false, fmt.Errorf("unknown category %q", item.Category)
	}
	existing, err := repo.FindByTitle(ctx, item.Title)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	rating := item.Rating
	stream := &model.Stream{
		Title:       item.Title,
		Description: item.Description,
		Thumbnail:   item.Thumbnail,
		Banner:      item.Banner,
		URL:         item.URL,
		CategoryID:  category.ID,
		Duration:    item.Duration,
		Rating:      &rating,
		Language:    "English",
		Quality:     item.Quality,
		IsFeatured:  item.IsFeatured,
		IsActive:    true,
	}
	if item.ReleaseYear != 0 {
		year := item.ReleaseYear
		stream.ReleaseYear = &year
	}
	if err := repo.Create(ctx, stream); err != nil {
		return nil, false, err
	}
	return stream, true, nil
}
