package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/contactdir/internal/flagx"
	"github.com/dmitrijs2005/contactdir/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "350ms" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL        string         `json:"server_url"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	SearchDebounce   timex.Duration `json:"search_debounce"`
	DownloadDir      string         `json:"download_dir"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
	PictureCacheSize int            `json:"picture_cache_size"`
	Export           *JsonS3Config  `json:"export"`
}

type JsonS3Config struct {
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Prefix    string `json:"prefix"`
}

// parseJson overlays cfg with the values present in the JSON file named by
// -c/-config or $CONTACTDIR_CONFIG. Absent keys keep their earlier values.
func parseJson(cfg *Config) error {
	path := flagx.ConfigFile()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.DownloadDir, jc.DownloadDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SearchDebounce.Duration != 0 {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
	if jc.PictureCacheSize != 0 {
		cfg.PictureCacheSize = jc.PictureCacheSize
	}
	if e := jc.Export; e != nil {
		setString(&cfg.Export.Bucket, e.Bucket)
		setString(&cfg.Export.Region, e.Region)
		setString(&cfg.Export.Endpoint, e.Endpoint)
		setString(&cfg.Export.AccessKey, e.AccessKey)
		setString(&cfg.Export.SecretKey, e.SecretKey)
		setString(&cfg.Export.Prefix, e.Prefix)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
