package layout

// BuildOptions 配置场景构建所需的配置表与调试输出。
type BuildOptions struct {
	Profiles ProfileTable
	Debug    DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	Path string // 非空时把全部场景写成 JSON
}

// ProfileTable 返回 Profiles，未设置时退回内置配置。
func (o BuildOptions) ProfileTable() ProfileTable {
	if len(o.Profiles) == 0 {
		return DefaultProfiles()
	}
	return o.Profiles
}
