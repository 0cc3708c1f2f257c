package application

import (
	"fmt"
	"io"
	"strings"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/logging/logger"
	"github.com/epoint/springlab/version"
)

const bannerArt = `                     _            _       _
 ___ _ __  _ __(_)_ __   __ _| | __ _| |__
/ __| '_ \| '__| | '_ \ / _' | |/ _' | '_ \
\__ \ |_) | |  | | | | | (_| | | (_| | |_) |
|___/ .__/|_|  |_|_| |_|\__, |_|\__,_|_.__/
    |_|                 |___/`

// bannerText returns the banner for conf
func bannerText(conf *config.Config) string {
	info := version.GetVersionInfo()
	return fmt.Sprintf("%s\n :: %s ::  (v%s, %s, %s)\n",
		bannerArt, conf.AppName, info.Version, info.Revision, info.GoVersion)
}

// printBanner writes the banner according to banner.mode
func printBanner(w io.Writer, log *logger.Logger, conf *config.Config) {
	if conf.Banner == nil {
		return
	}

	switch conf.Banner.Mode {
	case "off":
	case "log":
		for _, line := range strings.Split(strings.TrimRight(bannerText(conf), "\n"), "\n") {
			log.Logger.Info(line)
		}
	default:
		fmt.Fprintln(w, bannerText(conf))
	}
}
