package app

import (
	"github.com/spf13/viper"

	"github.com/hsdlab/hsd-annotator/models"
)

// LoadConfig reads the optional yaml configuration at path. Every key has a
// default, so an empty path yields a working configuration with the standard
// relative directory names.
func LoadConfig(path string) (*models.AppConfig, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("dataset.data_dir", "_precomputed_data")
	v.SetDefault("dataset.masks_dir", "_masks")
	v.SetDefault("dataset.db_path", "_annotations.db")
	v.SetDefault("annotator.tags", []string{"Benign", "Cancerous", "Anomaly", "Background", "Discard", "Keep"})
	v.SetDefault("annotator.max_canvas_width", 750)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg models.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
