//go:build mobile

// 移动端数据嵌入声明
//
// 构建前需要把根目录的 data/ 复制到本目录：
//
//	cp -r data mobile/ && go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/levels data/enemy_stats.yaml data/tower_stats.yaml
var dataFS embed.FS
