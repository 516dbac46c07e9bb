package logger

import (
	"github.com/sirupsen/logrus"
)

// serviceFormatter stamps every entry with the service name and version
// before handing it to the underlying formatter.
type serviceFormatter struct {
	base    logrus.Formatter
	appName string
	version string
}

func (f *serviceFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if f.appName == "" && f.version == "" {
		return f.base.Format(entry)
	}

	data := make(logrus.Fields, len(entry.Data)+2)
	for k, v := range entry.Data {
		data[k] = v
	}
	if f.appName != "" {
		data["app"] = f.appName
	}
	if f.version != "" {
		data["version"] = f.version
	}

	stamped := *entry
	stamped.Data = data
	return f.base.Format(&stamped)
}
