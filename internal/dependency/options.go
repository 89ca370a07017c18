package dependency

// Option keys understood by the detectors.
const (
	OptRequired = "required"
	OptModules  = "modules"
)

// Options carries the keyword arguments of a dependency declaration, as
// handed over by the build-description interpreter.
type Options map[string]interface{}

// requiredOption reads the "required" flag. Absent means false.
func requiredOption(dep string, opts Options) (bool, error) {
	val, ok := opts[OptRequired]
	if !ok {
		return false, nil
	}
	b, ok := val.(bool)
	if !ok {
		return false, invalidConfigError(dep, "", "%s: %q option must be a boolean, got %T", dep, OptRequired, val)
	}
	return b, nil
}

// modulesOption reads the "modules" option. A bare string is treated as a
// one-element list. The second return value reports whether the key was set.
func modulesOption(dep string, opts Options) ([]string, bool, error) {
	val, ok := opts[OptModules]
	if !ok {
		return nil, false, nil
	}

	switch v := val.(type) {
	case string:
		return []string{v}, true, nil
	case []string:
		return cloneStrings(v), true, nil
	case []interface{}:
		modules := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, true, invalidConfigError(dep, "", "%s: module argument is not a string: %v", dep, item)
			}
			modules = append(modules, str)
		}
		return modules, true, nil
	default:
		return nil, true, invalidConfigError(dep, "", "%s: %q option must be a string or a list of strings, got %T", dep, OptModules, val)
	}
}
