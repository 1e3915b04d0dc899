package seeds

func SeedAll() error {
	if err := SeedPermitNames(); err != nil {
		return err
	}
	if err := SeedImplementationTimes(); err != nil {
		return err
	}
	return nil
}
