package config

const (
	defaultGEDCOMFile          = "ged/family_tree.ged"
	defaultOutputDir           = "site"
	defaultSiteTitle           = "My Family Tree"
	defaultPeopleDir           = "ppl"
	defaultSurnamesDir         = "surnames"
	defaultExtension           = ".html"
	defaultIDPrefixLength      = 8
	maxIDPrefixLength          = 30
	defaultAncestorGenerations = 3
	maxAncestorGenerations     = 6
	defaultParentPolicy        = ParentPolicyFirst
	defaultRenderWorkers       = 1
	maxRenderWorkers           = 64
	defaultPreviewBind         = "127.0.0.1:8087"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Parent selection policies understood by the relationship resolver.
const (
	ParentPolicyFirst = "first"
	ParentPolicyLast  = "last"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			GEDCOMFile: defaultGEDCOMFile,
			OutputDir:  defaultOutputDir,
			StateDir:   defaultStateDir(),
		},
		Site: Site{
			Title:               defaultSiteTitle,
			PeopleDir:           defaultPeopleDir,
			SurnamesDir:         defaultSurnamesDir,
			Extension:           defaultExtension,
			IDPrefixLength:      defaultIDPrefixLength,
			AncestorGenerations: defaultAncestorGenerations,
			ParentPolicy:        defaultParentPolicy,
			NotesMarkdown:       true,
			WriteManifest:       true,
		},
		Render: Render{
			Workers: defaultRenderWorkers,
		},
		History: History{
			Enabled: true,
		},
		Preview: Preview{
			Bind: defaultPreviewBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
