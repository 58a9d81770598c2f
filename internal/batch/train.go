package batch

import (
	"fmt"
	"time"

	"github.com/myrteametrics/goldenbatch-api/internal/modeler"
	"go.uber.org/zap"
)

// TrainingRequest describes the model pair to create from the current selection
type TrainingRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Train turns the current selection into a new Pending model pair and clears the selection.
// No real training happens: the accuracy is the share of good batches in the training set.
// The selection is left untouched when the training set is empty or the model cannot be created.
func Train(selection *Selection, history Repository, models modeler.Repository, req TrainingRequest, now time.Time) (modeler.ModelPair, error) {
	view, ok := selection.take()
	if !ok {
		return modeler.ModelPair{}, fmt.Errorf("%w: the training set is empty", ErrInvalidArgument)
	}

	good := 0
	for _, id := range view.Training {
		b, found, err := history.Get(id)
		if err != nil {
			selection.restore(view)
			return modeler.ModelPair{}, err
		}
		if !found {
			selection.restore(view)
			return modeler.ModelPair{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if b.IsGood {
			good++
		}
	}

	name := req.Name
	if name == "" {
		name = "Model-" + now.Format("20060102-1504")
	}
	model := modeler.ModelPair{
		Name:              name,
		Description:       req.Description,
		TrainedDate:       now.Format(time.DateOnly),
		Accuracy:          round(float64(good)/float64(len(view.Training))*100, 1),
		Status:            modeler.StatusPending,
		TrainingBatches:   view.Training,
		ValidationBatches: view.Validation,
	}

	id, err := models.Create(model)
	if err != nil {
		selection.restore(view)
		return modeler.ModelPair{}, err
	}
	model.ID = id

	zap.L().Info("Model pair created from batch selection", zap.String("id", id), zap.String("name", name),
		zap.Int("training", len(view.Training)), zap.Int("validation", len(view.Validation)))
	return model, nil
}
