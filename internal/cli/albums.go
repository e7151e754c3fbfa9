package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"toolbelt/internal/config"
	"toolbelt/internal/photos"
)

var (
	albumsLibrary  string
	albumsPage     int
	albumsPageSize int
	albumsFolder   string
	albumsTaken    string
)

func init() {
	albumsCmd.PersistentFlags().StringVar(&albumsLibrary, "library", "", "Photo library database (default ~/.toolbelt/photos.db)")
	albumsBuildCmd.Flags().IntVar(&albumsPage, "page", 1, "Page of trips to process")
	albumsBuildCmd.Flags().IntVar(&albumsPageSize, "page-size", 0, "Trips per page (default: configured page size)")
	albumsBuildCmd.Flags().StringVar(&albumsFolder, "folder", "", "Albums folder (default: configured folder)")
	albumsAddCmd.Flags().StringVar(&albumsTaken, "taken", "", "When the photo was taken, 2006-01-02 or RFC 3339 (default: file mtime)")
	rootCmd.AddCommand(albumsCmd)
	albumsCmd.AddCommand(albumsBuildCmd)
	albumsCmd.AddCommand(albumsListCmd)
	albumsCmd.AddCommand(albumsAddCmd)
}

var albumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "Build trip photo albums",
	Long:  "Maintains a local photo library and files photos into albums named\nafter trips, one album per trip, by date range.",
}

var albumsBuildCmd = &cobra.Command{
	Use:   "build <trips.json>",
	Short: "File photos into one album per trip",
	Long: "Reads a trip itinerary export and, for each trip on the requested\n" +
		"page, creates an album and fills it with the photos taken between the\ntrip's start and end dates. Trips without photos are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runAlbumsBuild,
}

var albumsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List albums and their photo counts",
	RunE:  runAlbumsList,
}

var albumsAddCmd = &cobra.Command{
	Use:   "add <photo-path>",
	Short: "Record a photo in the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbumsAdd,
}

// libraryPath resolves the --library flag against the config directory.
func libraryPath() (string, error) {
	if albumsLibrary != "" {
		return albumsLibrary, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create library directory: %w", err)
	}
	return filepath.Join(dir, "photos.db"), nil
}

func runAlbumsBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	trips, err := photos.LoadTrips(args[0])
	if err != nil {
		return err
	}

	size := albumsPageSize
	if size <= 0 {
		size = cfg.Albums.PageSize
	}
	folder := albumsFolder
	if folder == "" {
		folder = cfg.Albums.Folder
	}

	pages := photos.Pages(trips, size)
	page := photos.Page(trips, albumsPage, size)
	if page == nil {
		return fmt.Errorf("page %d out of range: %d trips make %d pages of %d", albumsPage, len(trips), pages, size)
	}
	stderrf("page %d of %d: %d trips", albumsPage, pages, len(page))

	libPath, err := libraryPath()
	if err != nil {
		return err
	}
	lib, err := photos.Open(libPath)
	if err != nil {
		return err
	}
	defer lib.Close()

	builder := &photos.Builder{Lib: lib, Folder: folder, Logf: stderrf}
	result, err := builder.Build(cmd.Context(), page)
	if err != nil {
		return err
	}

	stderrf("filed %d photos into %d albums, %d trips skipped", result.Photos, result.Albums, result.Skipped)
	return nil
}

func runAlbumsList(cmd *cobra.Command, args []string) error {
	libPath, err := libraryPath()
	if err != nil {
		return err
	}
	lib, err := photos.Open(libPath)
	if err != nil {
		return err
	}
	defer lib.Close()

	albums, err := lib.Albums(cmd.Context())
	if err != nil {
		return err
	}
	if len(albums) == 0 {
		fmt.Println("No albums.")
		return nil
	}
	for _, a := range albums {
		fmt.Printf("%-12s %-44s %d photos\n", a.Folder, a.Name, a.Photos)
	}
	return nil
}

func runAlbumsAdd(cmd *cobra.Command, args []string) error {
	path := args[0]

	taken, err := takenTime(path)
	if err != nil {
		return err
	}

	libPath, err := libraryPath()
	if err != nil {
		return err
	}
	lib, err := photos.Open(libPath)
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.AddPhoto(cmd.Context(), path, taken); err != nil {
		return err
	}
	stderrf("added %s (taken %s)", path, taken.Format(time.RFC3339))
	return nil
}

// takenTime resolves the --taken flag, falling back to the file mtime.
func takenTime(path string) (time.Time, error) {
	if albumsTaken == "" {
		info, err := os.Stat(path)
		if err != nil {
			return time.Time{}, fmt.Errorf("stat photo: %w", err)
		}
		return info.ModTime(), nil
	}
	if t, err := time.Parse("2006-01-02", albumsTaken); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, albumsTaken)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse --taken %q: use 2006-01-02 or RFC 3339", albumsTaken)
	}
	return t, nil
}
