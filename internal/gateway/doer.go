// Package gateway は外部HTTPサービスへの転送を扱う。
// ルーティング（echo）には依存しない。
package gateway

import "net/http"

// *http.Client を満たす最小のインターフェース
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
