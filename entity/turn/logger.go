package turn

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "turn")
