package config

const (
	defaultDataDir               = "~/.local/share/vibeandbuild/data"
	defaultPublicDir             = "~/.local/share/vibeandbuild/public"
	defaultLogDir                = "~/.local/share/vibeandbuild/logs"
	defaultAPIBind               = "127.0.0.1:8487"
	defaultAdminPassword         = "admin123"
	defaultSubscribersCollection = "subscribers"
	defaultIdeasCollection       = "ideas"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Asset subdirectories under the public root. The static site references
// these paths verbatim, so they are not configurable.
const (
	ThumbnailsSubdir       = "images/thumbnails"
	ExperimentImagesSubdir = "images/experiments2"
	ExperimentVideosSubdir = "videos/experiments2"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			PublicDir: defaultPublicDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Admin: Admin{
			Password: defaultAdminPassword,
		},
		Firestore: Firestore{
			SubscribersCollection: defaultSubscribersCollection,
			IdeasCollection:       defaultIdeasCollection,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
