package common

// ErrorCollector gathers independent failures so that one failing step does not hide the others.
type ErrorCollector struct {
	errs []error
}

func (c *ErrorCollector) New(err error) {
	if err == nil {
		return
	}
	c.errs = append(c.errs, err)
}

func (c *ErrorCollector) HasErrors() bool {
	return len(c.errs) > 0
}

// Strings returns the error messages, nil when there are none.
func (c *ErrorCollector) Strings() []string {
	if !c.HasErrors() {
		return nil
	}

	res := make([]string, 0, len(c.errs))
	for _, err := range c.errs {
		res = append(res, err.Error())
	}
	return res
}
