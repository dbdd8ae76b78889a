package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch invokes onChange whenever the loaded config file changes on
// disk. Changes take effect on the next restart, the callback is only
// there to tell the operator so.
func Watch(onChange func(e fsnotify.Event)) {
	viper.OnConfigChange(onChange)
	viper.WatchConfig()
}
