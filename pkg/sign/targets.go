package sign

import "path"

// helperSuffixes are the helper-process bundle variants inside an
// Electron app, in signing order.
var helperSuffixes = []string{"", " (GPU)", " (Plugin)", " (Renderer)"}

// frameworkLibraries are the shared libraries inside the Electron
// framework that carry their own code signatures.
var frameworkLibraries = []string{
	"libEGL.dylib",
	"libGLESv2.dylib",
	"libffmpeg.dylib",
	"libvk_swiftshader.dylib",
}

// Targets returns the bundle-relative paths that must be signed
// individually when the bundler's automatic signing pass is disabled.
// The order is load-bearing: a nested binary or framework must be signed
// before any bundle that contains it, because re-signing an enclosing
// bundle invalidates unsigned components beneath it. The top-level
// executable and the .app itself are not in this list; the manual signer
// signs them last.
func Targets(appName string) []string {
	targets := make([]string, 0, 2*len(frameworkLibraries))

	const electronFramework = "Contents/Frameworks/Electron Framework.framework"
	for _, lib := range frameworkLibraries {
		targets = append(targets, path.Join(electronFramework, "Versions/A/Libraries", lib))
	}
	targets = append(targets,
		path.Join(electronFramework, "Versions/A/Electron Framework"),
		electronFramework,
	)

	for _, framework := range []string{"Mantle", "ReactiveObjC", "Squirrel"} {
		targets = append(targets,
			path.Join("Contents/Frameworks", framework+".framework", "Versions/A", framework),
			path.Join("Contents/Frameworks", framework+".framework"),
		)
	}

	for _, suffix := range helperSuffixes {
		helper := appName + " Helper" + suffix
		targets = append(targets,
			path.Join("Contents/Frameworks", helper+".app", "Contents/MacOS", helper),
			path.Join("Contents/Frameworks", helper+".app"),
		)
	}

	loginHelper := appName + " Login Helper"
	targets = append(targets,
		path.Join("Contents/Library/LoginItems", loginHelper+".app", "Contents/MacOS", loginHelper),
		path.Join("Contents/Library/LoginItems", loginHelper+".app"),
	)

	return targets
}
