// Package notification is the transient user-notification channel. The real
// presenter is an external collaborator, the default implementation only
// records the message; callers treat every publish as fire-and-forget.
package notification

import (
	"mypage/misc"

	"github.com/sirupsen/logrus"
)

var NotifyFunc = Notify

func Notify(title, description string) {
	misc.Log.WithFields(logrus.Fields{"title": title, "description": description}).Info("notification published")
}
