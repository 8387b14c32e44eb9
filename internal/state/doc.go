// Package state はセッション単位のカートとウィッシュリストを保持する。
//
// どちらも変更操作のたびに購読者へスナップショットを同期的に通知する。
// 通知はロックを外してから行うため、購読者からコンテナを読んでもよい。
// 同時に変更が走った場合の通知順は保証しないので、Versionで新旧を判断する。
package state
