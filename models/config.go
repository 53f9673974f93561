package models

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatasetConfig struct {
	DataDir  string `mapstructure:"data_dir"`
	MasksDir string `mapstructure:"masks_dir"`
	DBPath   string `mapstructure:"db_path"`
}

type AnnotatorConfig struct {
	Tags           []string `mapstructure:"tags"`
	MaxCanvasWidth int      `mapstructure:"max_canvas_width"`
}

type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Annotator AnnotatorConfig `mapstructure:"annotator"`
}
