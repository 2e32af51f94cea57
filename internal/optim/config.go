package optim

// Hyperparameter range checks shared by all optimizers. Validation happens
// once at construction; a failed check is fatal and never retried.

func validateLearningRate(lr float64) error {
	if lr <= 0 {
		return invalidHyperparameter("lr", lr, "must be > 0")
	}
	return nil
}

func validateBetas(betas [2]float64) error {
	if betas[0] < 0 || betas[0] >= 1 {
		return invalidHyperparameter("betas[0]", betas[0], "must be in [0, 1)")
	}
	if betas[1] < 0 || betas[1] >= 1 {
		return invalidHyperparameter("betas[1]", betas[1], "must be in [0, 1)")
	}
	return nil
}

func validateNonNegative(value float64, name string) error {
	if value < 0 {
		return invalidHyperparameter(name, value, "must be >= 0")
	}
	return nil
}

func validatePositive(value float64, name string) error {
	if value <= 0 {
		return invalidHyperparameter(name, value, "must be > 0")
	}
	return nil
}
