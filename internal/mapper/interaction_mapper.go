package mapper

import (
	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/model"

	"gorm.io/datatypes"
)

type InteractionMapper struct{}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{}
}

func (m *InteractionMapper) ToEntity(i *model.UiInteraction) *entity.Interaction {
	if i == nil {
		return nil
	}
	return &entity.Interaction{
		SNo:                   i.SNo,
		UserEmail:             i.UserEmail,
		DocumentName:          i.DocumentName,
		FileType:              i.FileType,
		FileSize:              i.FileSize,
		LanguageUsed:          i.LanguageUsed,
		DoubtSessions:         i.DoubtSessions,
		AssessmentsTaken:      i.AssessmentsTaken,
		QuizScore:             i.QuizScore,
		QuizDetail:            []byte(i.QuizDetail),
		VideoScriptsGenerated: i.VideoScriptsGenerated,
		VideosGenerated:       i.VideosGenerated,
		PdfsGenerated:         i.PdfsGenerated,
		AnalysisTimestamp:     i.AnalysisTimestamp,
	}
}

func (m *InteractionMapper) ToModel(i *entity.Interaction) *model.UiInteraction {
	if i == nil {
		return nil
	}
	return &model.UiInteraction{
		SNo:                   i.SNo,
		UserEmail:             i.UserEmail,
		DocumentName:          i.DocumentName,
		FileType:              i.FileType,
		FileSize:              i.FileSize,
		LanguageUsed:          i.LanguageUsed,
		DoubtSessions:         i.DoubtSessions,
		AssessmentsTaken:      i.AssessmentsTaken,
		QuizScore:             i.QuizScore,
		QuizDetail:            datatypes.JSON(i.QuizDetail),
		VideoScriptsGenerated: i.VideoScriptsGenerated,
		VideosGenerated:       i.VideosGenerated,
		PdfsGenerated:         i.PdfsGenerated,
		AnalysisTimestamp:     i.AnalysisTimestamp,
	}
}

func (m *InteractionMapper) ToEntities(items []*model.UiInteraction) []*entity.Interaction {
	out := make([]*entity.Interaction, len(items))
	for i, item := range items {
		out[i] = m.ToEntity(item)
	}
	return out
}
