// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("main.name", "Faunadex")
	viper.SetDefault("main.debug", false)
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "faunadex.log")

	viper.SetDefault("detector.modelpath", "models/fauna-detect.tflite")
	viper.SetDefault("detector.labelpath", "")
	viper.SetDefault("detector.threshold", 0.5)
	viper.SetDefault("detector.inputsize", 640)
	viper.SetDefault("detector.threads", 0)
	viper.SetDefault("detector.usexnnpack", true)

	viper.SetDefault("classifier.enabled", true)
	viper.SetDefault("classifier.modelpath", "models/fauna-classify.tflite")
	viper.SetDefault("classifier.labelpath", "")
	viper.SetDefault("classifier.inputsize", 224)
	viper.SetDefault("classifier.topn", 15)
	viper.SetDefault("classifier.minscore", 0.15)

	viper.SetDefault("ensemble.primarythreshold", 0.80)
	viper.SetDefault("ensemble.fallbackthreshold", 0.60)
	viper.SetDefault("ensemble.fallbackconfidence", 0.85)
	viper.SetDefault("ensemble.conflictconfidence", 0.75)
	viper.SetDefault("ensemble.fallbackonlyconfidence", 0.80)

	viper.SetDefault("enrichment.enabled", true)
	viper.SetDefault("enrichment.baseurl", "https://openrouter.ai/api/v1")
	viper.SetDefault("enrichment.apikey", "")
	viper.SetDefault("enrichment.model", "google/gemini-2.0-flash-001")
	viper.SetDefault("enrichment.timeout", 30*time.Second)
	viper.SetDefault("enrichment.refresh", RefreshPlaceholder)
	viper.SetDefault("enrichment.cachettl", 12*time.Hour)

	viper.SetDefault("realtime.session.queuesize", 8)
	viper.SetDefault("realtime.session.maxframerate", 10.0)
	viper.SetDefault("realtime.session.idletimeout", 5*time.Minute)
	viper.SetDefault("realtime.mqtt.enabled", false)
	viper.SetDefault("realtime.mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("realtime.mqtt.topic", "faunadex/discoveries")
	viper.SetDefault("realtime.log.enabled", false)
	viper.SetDefault("realtime.log.path", "recognitions.log")

	viper.SetDefault("thumbnails.path", "thumbnails/")
	viper.SetDefault("thumbnails.baseurl", "/media/thumbnails/")
	viper.SetDefault("thumbnails.maxsize", 100)
	viper.SetDefault("thumbnails.quality", 85)

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.log.enabled", true)
	viper.SetDefault("webserver.log.path", "webserver.log")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "faunadex.db")
	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "faunadex")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.database", "faunadex")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
}
